package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitrineshop/vitrine-backend/internal/catalog"
	"github.com/vitrineshop/vitrine-backend/internal/paymentmethods"
	"github.com/vitrineshop/vitrine-backend/internal/quotes"
	"github.com/vitrineshop/vitrine-backend/internal/settings"
	"github.com/vitrineshop/vitrine-backend/pkg/enums"
	pkgerrors "github.com/vitrineshop/vitrine-backend/pkg/errors"
	"github.com/vitrineshop/vitrine-backend/pkg/logger"
	"github.com/vitrineshop/vitrine-backend/pkg/pagination"
	"github.com/vitrineshop/vitrine-backend/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

type stubCatalogService struct {
	page       *catalog.ProductPageDTO
	product    *catalog.ProductDTO
	categories []catalog.CategoryDTO
	err        error
}

func (s *stubCatalogService) ListProducts(_ context.Context, _ int) (*catalog.ProductPageDTO, error) {
	return s.page, s.err
}

func (s *stubCatalogService) GetProductBySlug(_ context.Context, _ string) (*catalog.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubCatalogService) ListCategories(_ context.Context) ([]catalog.CategoryDTO, error) {
	return s.categories, nil
}

type stubSettingsService struct {
	store settings.StoreSettings
}

func (s *stubSettingsService) Get(_ context.Context) (settings.StoreSettings, error) {
	return s.store, nil
}

func (s *stubSettingsService) Save(_ context.Context, input settings.StoreSettings) (settings.StoreSettings, error) {
	s.store = input
	return input, nil
}

type stubPaymentMethodsService struct {
	active []paymentmethods.PaymentMethodDTO
}

func (s *stubPaymentMethodsService) ListActive(_ context.Context) ([]paymentmethods.PaymentMethodDTO, error) {
	return s.active, nil
}

func (s *stubPaymentMethodsService) List(_ context.Context) ([]paymentmethods.PaymentMethodDTO, error) {
	return s.active, nil
}

func (s *stubPaymentMethodsService) Get(_ context.Context, _ uuid.UUID) (*paymentmethods.PaymentMethodDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment method not found")
}

func (s *stubPaymentMethodsService) Create(_ context.Context, _ paymentmethods.PaymentMethodInput) (*paymentmethods.PaymentMethodDTO, error) {
	return nil, nil
}

func (s *stubPaymentMethodsService) Update(_ context.Context, _ uuid.UUID, _ paymentmethods.PaymentMethodInput) (*paymentmethods.PaymentMethodDTO, error) {
	return nil, nil
}

func (s *stubPaymentMethodsService) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

type stubQuoteService struct {
	quote *quotes.QuoteDTO
	err   error
	input quotes.CreateQuoteInput
}

func (s *stubQuoteService) CreateQuote(_ context.Context, input quotes.CreateQuoteInput) (*quotes.QuoteDTO, error) {
	s.input = input
	return s.quote, s.err
}

func (s *stubQuoteService) GetByToken(_ context.Context, _ string) (*quotes.QuoteDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.quote, nil
}

func (s *stubQuoteService) List(_ context.Context, _ int) (*quotes.QuotePageDTO, error) {
	return &quotes.QuotePageDTO{}, nil
}

func (s *stubQuoteService) Get(_ context.Context, _ uuid.UUID) (*quotes.QuoteDTO, error) {
	return s.quote, s.err
}

func (s *stubQuoteService) UpdateStatus(_ context.Context, _ uuid.UUID, _ enums.QuoteStatus, _ uuid.UUID) (*quotes.QuoteDTO, error) {
	return s.quote, s.err
}

func (s *stubQuoteService) Delete(_ context.Context, _ uuid.UUID) error {
	return s.err
}

func TestHome(t *testing.T) {
	catalogStub := &stubCatalogService{
		page: &catalog.ProductPageDTO{
			Products: []catalog.ProductDTO{},
			PageInfo: pagination.PageInfo{Page: 1, PageSize: 12, TotalItems: 0, TotalPages: 1},
		},
		categories: []catalog.CategoryDTO{},
	}
	settingsStub := &stubSettingsService{store: settings.StoreSettings{StoreName: "Vitrine Demo"}}

	req := httptest.NewRequest(http.MethodGet, "/?page=1", nil)
	rec := httptest.NewRecorder()
	Home(catalogStub, settingsStub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
	storeData, ok := data["settings"].(map[string]any)
	if !ok || storeData["store_name"] != "Vitrine Demo" {
		t.Fatalf("expected settings in payload, got %+v", data["settings"])
	}
}

func TestCartSubmitRedirects(t *testing.T) {
	productID := uuid.New()
	quoteStub := &stubQuoteService{
		quote: &quotes.QuoteDTO{
			ID:          uuid.New(),
			UniqueToken: "a1b2c3d4e5f6g7h8",
			Status:      "pending",
			TotalAmount: decimal.RequireFromString("150.00"),
		},
	}

	body := `{"client_name":"Ana Souza","client_contact":"5511999990000","items":[{"product_id":"` + productID.String() + `","quantity":3}]}`
	req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CartSubmit(quoteStub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/quote/a1b2c3d4e5f6g7h8" {
		t.Fatalf("unexpected location %q", loc)
	}
	if quoteStub.input.ClientName != "Ana Souza" {
		t.Fatalf("expected client name forwarded, got %q", quoteStub.input.ClientName)
	}
	if len(quoteStub.input.Items) != 1 || quoteStub.input.Items[0].Quantity != 3 {
		t.Fatalf("unexpected items %+v", quoteStub.input.Items)
	}

	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok || data["unique_token"] != "a1b2c3d4e5f6g7h8" {
		t.Fatalf("expected quote envelope, got %+v", envelope.Data)
	}
}

func TestCartSubmitRejectsEmptyItems(t *testing.T) {
	quoteStub := &stubQuoteService{}

	body := `{"client_name":"Ana","client_contact":"5511","items":[]}`
	req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CartSubmit(quoteStub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestQuoteViewNotFound(t *testing.T) {
	quoteStub := &stubQuoteService{err: pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")}

	req := httptest.NewRequest(http.MethodGet, "/quote/unknowntoken1234", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("token", "unknowntoken1234")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()
	QuoteView(quoteStub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestQuoteViewTagsTokenInLogs(t *testing.T) {
	quoteStub := &stubQuoteService{err: pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")}

	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Output: &buf})

	req := httptest.NewRequest(http.MethodGet, "/quote/abcdef0123456789", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("token", "abcdef0123456789")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()
	QuoteView(quoteStub, logg).ServeHTTP(rec, req)

	if !strings.Contains(buf.String(), `"quote_token":"abcdef0123456789"`) {
		t.Fatalf("expected quote_token in log output, got %s", buf.String())
	}
}
