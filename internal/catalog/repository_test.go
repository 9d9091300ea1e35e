package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vitrineshop/vitrine-backend/pkg/db/models"
	"github.com/vitrineshop/vitrine-backend/pkg/pagination"
)

func mustCreateCatalogProduct(t *testing.T, tx *gorm.DB, name string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Slug:     fmt.Sprintf("cat-test-%s", name),
		Price:    decimal.RequireFromString("49.90"),
		IsActive: active,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestRepositoryListActiveProducts(t *testing.T) {
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

	active := mustCreateCatalogProduct(t, tx, "visible", true)
	_ = mustCreateCatalogProduct(t, tx, "hidden", false)

	tier := &models.PriceTier{ProductID: active.ID, MinQuantity: 10, Price: decimal.RequireFromString("39.90")}
	if err := tx.Create(tier).Error; err != nil {
		t.Fatalf("create tier: %v", err)
	}
	higher := &models.PriceTier{ProductID: active.ID, MinQuantity: 50, Price: decimal.RequireFromString("29.90")}
	if err := tx.Create(higher).Error; err != nil {
		t.Fatalf("create tier: %v", err)
	}

	rows, total, err := repo.ListActiveProducts(ctx, pagination.Params{Page: 1, PageSize: 12})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if total < 1 {
		t.Fatalf("expected at least 1 active product, got %d", total)
	}

	var found *models.Product
	for i := range rows {
		if rows[i].ID == active.ID {
			found = &rows[i]
		}
		if rows[i].Slug == "cat-test-hidden" {
			t.Fatal("inactive product leaked into storefront listing")
		}
	}
	if found == nil {
		t.Fatal("active product missing from listing")
	}
	if len(found.PriceTiers) != 2 || found.PriceTiers[0].MinQuantity <= found.PriceTiers[1].MinQuantity {
		t.Fatalf("expected tiers preloaded min_quantity DESC, got %+v", found.PriceTiers)
	}
}

func TestRepositoryFindActiveBySlug(t *testing.T) {
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

	created := mustCreateCatalogProduct(t, tx, "detail", true)

	product, err := repo.FindActiveBySlug(ctx, created.Slug)
	if err != nil {
		t.Fatalf("find by slug: %v", err)
	}
	if product.ID != created.ID {
		t.Fatalf("expected product %s, got %s", created.ID, product.ID)
	}

	if _, err := repo.FindActiveBySlug(ctx, "cat-test-absent"); err == nil {
		t.Fatal("expected error for unknown slug")
	}
}
