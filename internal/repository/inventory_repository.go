package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinova/clinic-core/internal/model"
)

type InventoryRepository interface {
	// Creates the stock row for a medication or updates the existing one.
	Upsert(ctx context.Context, inv *model.Inventory) error
	GetByMedication(ctx context.Context, medicationID uuid.UUID) (*model.Inventory, error)
	// Adjust shifts quantity_on_hand by delta (negative to dispense) and
	// returns the updated row.
	Adjust(ctx context.Context, medicationID uuid.UUID, delta int) (*model.Inventory, error)
	ListBelowReorder(ctx context.Context) ([]model.Inventory, error)
}

type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) Upsert(ctx context.Context, inv *model.Inventory) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "medication_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity_on_hand", "reorder_level", "updated_at"}),
		}).
		Create(inv).Error
}

func (r *GormInventoryRepository) GetByMedication(ctx context.Context, medicationID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	if err := r.db.WithContext(ctx).Where("medication_id = ?", medicationID).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *GormInventoryRepository) Adjust(ctx context.Context, medicationID uuid.UUID, delta int) (*model.Inventory, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Inventory{}).
		Where("medication_id = ?", medicationID).
		Update("quantity_on_hand", gorm.Expr("quantity_on_hand + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByMedication(ctx, medicationID)
}

func (r *GormInventoryRepository) ListBelowReorder(ctx context.Context) ([]model.Inventory, error) {
	var rows []model.Inventory
	err := r.db.WithContext(ctx).
		Where("quantity_on_hand <= reorder_level").
		Order("quantity_on_hand ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
