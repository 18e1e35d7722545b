package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/model"
	"github.com/clinova/clinic-core/internal/repository"
)

var (
	ErrNoPrescriptionItems = errors.New("prescription needs at least one item")
	ErrAlreadyPrescribed   = errors.New("appointment already has a prescription")
	ErrOutOfStock          = errors.New("not enough stock to dispense")
)

// PrescriptionItemInput is one medication line of a prescription.
type PrescriptionItemInput struct {
	MedicationID uuid.UUID
	Dosage       string
	Frequency    string
	DurationDays int
	Instructions string
	// Units to draw from inventory on dispense; defaults to 1.
	Quantity int
}

// PharmacyService issues prescriptions and moves stock.
type PharmacyService struct {
	db               *gorm.DB
	prescriptionRepo repository.PrescriptionRepository
	inventoryRepo    repository.InventoryRepository
	log              *zap.Logger
}

func NewPharmacyService(
	db *gorm.DB,
	prescriptionRepo repository.PrescriptionRepository,
	inventoryRepo repository.InventoryRepository,
	log *zap.Logger,
) *PharmacyService {
	return &PharmacyService{
		db:               db,
		prescriptionRepo: prescriptionRepo,
		inventoryRepo:    inventoryRepo,
		log:              log,
	}
}

// Issue writes the prescription and its items in one transaction. The
// unique index on appointment_id makes a second prescription for the
// same visit fail; that is surfaced as ErrAlreadyPrescribed.
func (s *PharmacyService) Issue(
	ctx context.Context,
	appointmentID, doctorID uuid.UUID,
	notes string,
	items []PrescriptionItemInput,
) (*model.Prescription, error) {
	if len(items) == 0 {
		return nil, ErrNoPrescriptionItems
	}

	p := &model.Prescription{
		ID:            uuid.New(),
		AppointmentID: appointmentID,
		DoctorID:      doctorID,
		Notes:         notes,
	}
	for _, it := range items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		p.Items = append(p.Items, model.PrescriptionItem{
			ID:             uuid.New(),
			PrescriptionID: p.ID,
			MedicationID:   it.MedicationID,
			Dosage:         it.Dosage,
			Frequency:      it.Frequency,
			DurationDays:   it.DurationDays,
			Quantity:       qty,
			Instructions:   it.Instructions,
		})
	}

	if err := s.prescriptionRepo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyPrescribed
		}
		return nil, fmt.Errorf("issue prescription: %w", err)
	}

	s.log.Info("prescription issued",
		zap.String("prescription_id", p.ID.String()),
		zap.String("appointment_id", appointmentID.String()),
		zap.Int("items", len(p.Items)),
	)
	return p, nil
}

// Dispense decrements stock for every item of a prescription, the issued
// quantity per item unless quantities override it. All decrements happen
// in one transaction, so a shortfall on any item leaves every stock level
// untouched. Stock that drops to or below the reorder level is logged.
func (s *PharmacyService) Dispense(ctx context.Context, prescriptionID uuid.UUID, quantities map[uuid.UUID]int) error {
	p, err := s.prescriptionRepo.GetByID(ctx, prescriptionID)
	if err != nil {
		return fmt.Errorf("load prescription: %w", err)
	}

	var low []model.Inventory
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range p.Items {
			qty := item.Quantity
			if quantities != nil && quantities[item.MedicationID] > 0 {
				qty = quantities[item.MedicationID]
			}
			if qty <= 0 {
				qty = 1
			}

			var inv model.Inventory
			if err := tx.Where("medication_id = ?", item.MedicationID).First(&inv).Error; err != nil {
				return fmt.Errorf("load inventory: %w", err)
			}
			if inv.QuantityOnHand < qty {
				return ErrOutOfStock
			}

			if err := tx.Model(&model.Inventory{}).
				Where("medication_id = ?", item.MedicationID).
				Update("quantity_on_hand", gorm.Expr("quantity_on_hand - ?", qty)).Error; err != nil {
				return fmt.Errorf("adjust inventory: %w", err)
			}
			inv.QuantityOnHand -= qty
			if inv.QuantityOnHand <= inv.ReorderLevel {
				low = append(low, inv)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, inv := range low {
		s.log.Warn("stock at or below reorder level",
			zap.String("medication_id", inv.MedicationID.String()),
			zap.Int("quantity_on_hand", inv.QuantityOnHand),
			zap.Int("reorder_level", inv.ReorderLevel),
		)
	}
	return nil
}

func (s *PharmacyService) Restock(ctx context.Context, medicationID uuid.UUID, qty int) (*model.Inventory, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("restock quantity must be positive, got %d", qty)
	}
	return s.inventoryRepo.Adjust(ctx, medicationID, qty)
}
