package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/model"
)

type InvoiceRepository interface {
	// Creates the invoice together with its line items.
	Create(ctx context.Context, inv *model.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.InvoiceStatus) error
	SetTotal(ctx context.Context, id uuid.UUID, total float64) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]model.Invoice, int64, error)
	// Sum of the generated line_total column for an invoice.
	SumLineTotals(ctx context.Context, id uuid.UUID) (float64, error)
}

type GormInvoiceRepository struct {
	db *gorm.DB
}

func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func (r *GormInvoiceRepository) Create(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *GormInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	if err := r.db.WithContext(ctx).Preload("Items").First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *GormInvoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.InvoiceStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Invoice{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormInvoiceRepository) SetTotal(ctx context.Context, id uuid.UUID, total float64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Invoice{}).
		Where("id = ?", id).
		Update("total_amount", total)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormInvoiceRepository) ListByPatient(
	ctx context.Context,
	patientID uuid.UUID,
	limit, offset int,
) ([]model.Invoice, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Invoice{}).
		Where("patient_id = ?", patientID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var invoices []model.Invoice
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&invoices).Error; err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *GormInvoiceRepository) SumLineTotals(ctx context.Context, id uuid.UUID) (float64, error) {
	var sum *float64
	err := r.db.WithContext(ctx).
		Model(&model.InvoiceItem{}).
		Select("SUM(line_total)").
		Where("invoice_id = ?", id).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
