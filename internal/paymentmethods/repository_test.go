package paymentmethods

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/vitrineshop/vitrine-backend/pkg/db/models"
)

func TestPaymentMethodActiveFilter(t *testing.T) {
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
	suffix := uuid.NewString()[:8]

	active, err := repo.Create(ctx, &models.PaymentMethod{
		Name:     fmt.Sprintf("pm-test-active-%s", suffix),
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create active method: %v", err)
	}
	inactive, err := repo.Create(ctx, &models.PaymentMethod{
		Name:     fmt.Sprintf("pm-test-inactive-%s", suffix),
		IsActive: false,
	})
	if err != nil {
		t.Fatalf("create inactive method: %v", err)
	}

	rows, err := repo.List(ctx, true)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	for _, row := range rows {
		if row.ID == inactive.ID {
			t.Fatal("inactive method must not appear in active list")
		}
	}

	found := false
	for _, row := range rows {
		if row.ID == active.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("active method missing from active list")
	}
}
