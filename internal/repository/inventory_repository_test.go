package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/model"
	"github.com/clinova/clinic-core/internal/repository"
	"github.com/clinova/clinic-core/internal/testdb"
)

func TestInventoryUpsert(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := repository.NewGormInventoryRepository(db)

	m := seedMedication(t, db, "Ibuprofen", "200mg")

	first := &model.Inventory{ID: uuid.New(), MedicationID: m.ID, QuantityOnHand: 100, ReorderLevel: 20}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// Second upsert for the same medication updates in place instead of
	// tripping the unique index.
	second := &model.Inventory{ID: uuid.New(), MedicationID: m.ID, QuantityOnHand: 80, ReorderLevel: 25}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.GetByMedication(ctx, m.ID)
	if err != nil {
		t.Fatalf("get by medication: %v", err)
	}
	if got.QuantityOnHand != 80 || got.ReorderLevel != 25 {
		t.Fatalf("stock = %d/%d, want 80/25", got.QuantityOnHand, got.ReorderLevel)
	}

	var count int64
	db.Model(&model.Inventory{}).Where("medication_id = ?", m.ID).Count(&count)
	if count != 1 {
		t.Fatalf("got %d inventory rows, want exactly 1 per medication", count)
	}
}

func TestInventoryAdjust(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := repository.NewGormInventoryRepository(db)

	m := seedMedication(t, db, "Ibuprofen", "200mg")
	if err := repo.Upsert(ctx, &model.Inventory{ID: uuid.New(), MedicationID: m.ID, QuantityOnHand: 10}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.Adjust(ctx, m.ID, -3)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if got.QuantityOnHand != 7 {
		t.Fatalf("quantity = %d, want 7", got.QuantityOnHand)
	}

	got, err = repo.Adjust(ctx, m.ID, 13)
	if err != nil {
		t.Fatalf("adjust up: %v", err)
	}
	if got.QuantityOnHand != 20 {
		t.Fatalf("quantity = %d, want 20", got.QuantityOnHand)
	}

	if _, err := repo.Adjust(ctx, uuid.New(), 5); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound for unknown medication", err)
	}
}

func TestListBelowReorder(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := repository.NewGormInventoryRepository(db)

	low := seedMedication(t, db, "Amoxicillin", "500mg")
	ok := seedMedication(t, db, "Ibuprofen", "200mg")

	if err := repo.Upsert(ctx, &model.Inventory{ID: uuid.New(), MedicationID: low.ID, QuantityOnHand: 5, ReorderLevel: 10}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Upsert(ctx, &model.Inventory{ID: uuid.New(), MedicationID: ok.ID, QuantityOnHand: 50, ReorderLevel: 10}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	rows, err := repo.ListBelowReorder(ctx)
	if err != nil {
		t.Fatalf("list below reorder: %v", err)
	}
	if len(rows) != 1 || rows[0].MedicationID != low.ID {
		t.Fatalf("rows = %+v, want only the low-stock medication", rows)
	}
}
