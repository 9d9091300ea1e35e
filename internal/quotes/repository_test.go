package quotes

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitrineshop/vitrine-backend/pkg/db/models"
	"github.com/vitrineshop/vitrine-backend/pkg/enums"
)

func mustCreateQuoteFixtures(t *testing.T, tx *gorm.DB) (*models.Client, *models.Product) {
	t.Helper()

	client := &models.Client{
		Name:        "Repo Tester",
		ContactMain: fmt.Sprintf("5511%s", uuid.NewString()[:8]),
	}
	if err := tx.Create(client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}

	product := &models.Product{
		Name:     "Quote Product",
		Slug:     fmt.Sprintf("quote-test-%s", uuid.NewString()[:8]),
		Price:    dec("100.00"),
		IsActive: true,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	tier := &models.PriceTier{ProductID: product.ID, MinQuantity: 10, Price: dec("90.00")}
	if err := tx.Create(tier).Error; err != nil {
		t.Fatalf("create tier: %v", err)
	}

	return client, product
}

func TestRepositoryQuoteLifecycle(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	client, product := mustCreateQuoteFixtures(t, tx)

	quote, err := repo.CreateQuote(ctx, &models.Quote{
		UniqueToken: uuid.NewString()[:16],
		ClientID:    client.ID,
		Status:      enums.QuoteStatusPending,
		TotalAmount: dec("900.00"),
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	if err := repo.CreateItems(ctx, []models.QuoteItem{{
		QuoteID:   quote.ID,
		ProductID: product.ID,
		Quantity:  10,
		UnitPrice: dec("90.00"),
	}}); err != nil {
		t.Fatalf("create items: %v", err)
	}

	loaded, err := repo.FindByToken(ctx, quote.UniqueToken)
	if err != nil {
		t.Fatalf("find by token: %v", err)
	}
	if loaded.Client == nil || loaded.Client.ID != client.ID {
		t.Fatal("expected client preloaded")
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Product == nil {
		t.Fatalf("expected item with product preloaded, got %+v", loaded.Items)
	}

	var count int64
	if err := tx.Model(&models.QuoteItem{}).Where("quote_id = ?", quote.ID).Count(&count).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 item row, got %d", count)
	}
}

func TestRepositoryFindProductsWithTiers(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	_, product := mustCreateQuoteFixtures(t, tx)

	rows, err := repo.FindProductsWithTiers(ctx, []uuid.UUID{product.ID, uuid.New()})
	if err != nil {
		t.Fatalf("find products: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 product, got %d", len(rows))
	}
	if len(rows[0].PriceTiers) != 1 {
		t.Fatalf("expected tier preloaded, got %+v", rows[0].PriceTiers)
	}
}

func TestRepositoryUpdateStatus(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	client, _ := mustCreateQuoteFixtures(t, tx)
	user := &models.User{
		Name:         "Reviewer",
		Email:        fmt.Sprintf("reviewer-%s@example.com", uuid.NewString()[:8]),
		PasswordHash: "hash",
		Role:         enums.UserRoleAdmin,
		IsActive:     true,
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	quote, err := repo.CreateQuote(ctx, &models.Quote{
		UniqueToken: uuid.NewString()[:16],
		ClientID:    client.ID,
		Status:      enums.QuoteStatusPending,
		TotalAmount: dec("10.00"),
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	if err := repo.UpdateStatus(ctx, quote.ID, enums.QuoteStatusApproved, user.ID); err != nil {
		t.Fatalf("update status: %v", err)
	}

	loaded, err := repo.FindByID(ctx, quote.ID)
	if err != nil {
		t.Fatalf("reload quote: %v", err)
	}
	if loaded.Status != enums.QuoteStatusApproved {
		t.Fatalf("expected approved, got %s", loaded.Status)
	}
	if loaded.UserID == nil || *loaded.UserID != user.ID {
		t.Fatalf("expected reviewer recorded, got %v", loaded.UserID)
	}

	if err := repo.UpdateStatus(ctx, uuid.New(), enums.QuoteStatusApproved, user.ID); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected record not found for unknown quote, got %v", err)
	}
}
