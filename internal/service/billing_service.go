package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/model"
	"github.com/clinova/clinic-core/internal/repository"
)

var (
	ErrEmptyInvoice    = errors.New("invoice needs at least one line item")
	ErrUntaggedLine    = errors.New("invoice line needs a service, a medication, or a description")
	ErrInvoiceNotVoid  = errors.New("only pending invoices can be voided")
	ErrNoBillableLines = errors.New("appointment has no billable service lines")
)

// InvoiceLine is one line of an invoice to be created. Exactly like the
// check constraint: a service ref, a medication ref, or a description.
type InvoiceLine struct {
	ServiceID    *uuid.UUID
	MedicationID *uuid.UUID
	Description  string
	Quantity     int
	UnitPrice    float64
}

// BillingService creates invoices and keeps the stored total in step
// with the line items — the database does not do that on its own.
type BillingService struct {
	db          *gorm.DB
	invoiceRepo repository.InvoiceRepository
	apptRepo    repository.AppointmentRepository
	log         *zap.Logger
}

func NewBillingService(
	db *gorm.DB,
	invoiceRepo repository.InvoiceRepository,
	apptRepo repository.AppointmentRepository,
	log *zap.Logger,
) *BillingService {
	return &BillingService{
		db:          db,
		invoiceRepo: invoiceRepo,
		apptRepo:    apptRepo,
		log:         log,
	}
}

// CreateInvoice writes the invoice and its items in one transaction and
// stores the computed total.
func (s *BillingService) CreateInvoice(
	ctx context.Context,
	patientID uuid.UUID,
	appointmentID, createdByID *uuid.UUID,
	lines []InvoiceLine,
) (*model.Invoice, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyInvoice
	}
	for _, l := range lines {
		if l.ServiceID == nil && l.MedicationID == nil && l.Description == "" {
			return nil, ErrUntaggedLine
		}
	}

	inv := &model.Invoice{
		ID:            uuid.New(),
		PatientID:     patientID,
		AppointmentID: appointmentID,
		CreatedByID:   createdByID,
		Status:        model.InvoiceStatusPending,
		TotalAmount:   invoiceTotal(lines),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		for _, l := range lines {
			qty := l.Quantity
			if qty <= 0 {
				qty = 1
			}
			item := model.InvoiceItem{
				ID:           uuid.New(),
				InvoiceID:    inv.ID,
				ServiceID:    l.ServiceID,
				MedicationID: l.MedicationID,
				Description:  l.Description,
				Quantity:     qty,
				UnitPrice:    l.UnitPrice,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.Float64("total", inv.TotalAmount),
	)
	return inv, nil
}

// InvoiceForAppointment builds an invoice from the appointment's service
// lines, carrying over the prices snapshotted at booking time.
func (s *BillingService) InvoiceForAppointment(
	ctx context.Context,
	appointmentID uuid.UUID,
	createdByID *uuid.UUID,
) (*model.Invoice, error) {
	appt, err := s.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	if len(appt.Services) == 0 {
		return nil, ErrNoBillableLines
	}

	lines := make([]InvoiceLine, 0, len(appt.Services))
	for _, as := range appt.Services {
		svcID := as.ServiceID
		lines = append(lines, InvoiceLine{
			ServiceID: &svcID,
			Quantity:  as.Quantity,
			UnitPrice: as.UnitPrice,
		})
	}

	return s.CreateInvoice(ctx, appt.PatientID, &appointmentID, createdByID, lines)
}

func (s *BillingService) MarkPaid(ctx context.Context, id uuid.UUID) error {
	return s.invoiceRepo.UpdateStatus(ctx, id, model.InvoiceStatusPaid)
}

func (s *BillingService) Void(ctx context.Context, id uuid.UUID) error {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status != model.InvoiceStatusPending {
		return ErrInvoiceNotVoid
	}
	return s.invoiceRepo.UpdateStatus(ctx, id, model.InvoiceStatusVoid)
}

// RecomputeTotal resets the stored total from the generated line totals,
// for invoices whose items were edited out-of-band.
func (s *BillingService) RecomputeTotal(ctx context.Context, id uuid.UUID) (float64, error) {
	sum, err := s.invoiceRepo.SumLineTotals(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.invoiceRepo.SetTotal(ctx, id, sum); err != nil {
		return 0, err
	}
	return sum, nil
}

func invoiceTotal(lines []InvoiceLine) float64 {
	var total float64
	for _, l := range lines {
		qty := l.Quantity
		if qty <= 0 {
			qty = 1
		}
		total += float64(qty) * l.UnitPrice
	}
	// Two decimal places, matching the numeric(10,2) column.
	return math.Round(total*100) / 100
}
