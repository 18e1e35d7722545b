package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/model"
	"github.com/clinova/clinic-core/internal/repository"
	"github.com/clinova/clinic-core/internal/service"
	"github.com/clinova/clinic-core/internal/testdb"
)

func newBillingService(db *gorm.DB) *service.BillingService {
	return service.NewBillingService(
		db,
		repository.NewGormInvoiceRepository(db),
		repository.NewGormAppointmentRepository(db),
		zap.NewNop(),
	)
}

func TestCreateInvoice(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	svc := newBillingService(db)

	p := seedPatient(t, db, "Ivan")
	consult := seedService(t, db, "CONS", 75.00)

	inv, err := svc.CreateInvoice(ctx, p.ID, nil, nil, []service.InvoiceLine{
		{ServiceID: &consult.ID, Quantity: 1, UnitPrice: 75.00},
		{Description: "supplies", Quantity: 3, UnitPrice: 4.55},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	// 75 + 13.65, rounded to cents.
	if inv.TotalAmount != 88.65 {
		t.Fatalf("total = %v, want 88.65", inv.TotalAmount)
	}
	if inv.Status != model.InvoiceStatusPending {
		t.Fatalf("status = %s, want pending", inv.Status)
	}

	var items []model.InvoiceItem
	if err := db.Where("invoice_id = ?", inv.ID).Find(&items).Error; err != nil {
		t.Fatalf("load items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
}

func TestCreateInvoiceValidation(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	svc := newBillingService(db)
	p := seedPatient(t, db, "Ivan")

	_, err := svc.CreateInvoice(ctx, p.ID, nil, nil, nil)
	if !errors.Is(err, service.ErrEmptyInvoice) {
		t.Fatalf("err = %v, want ErrEmptyInvoice", err)
	}

	_, err = svc.CreateInvoice(ctx, p.ID, nil, nil, []service.InvoiceLine{
		{Quantity: 1, UnitPrice: 10},
	})
	if !errors.Is(err, service.ErrUntaggedLine) {
		t.Fatalf("err = %v, want ErrUntaggedLine", err)
	}
}

func TestInvoiceForAppointment(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	billing := newBillingService(db)
	scheduling := newSchedulingService(db)

	p := seedPatient(t, db, "Ivan")
	d := seedDoctor(t, db, "LIC-001")
	consult := seedService(t, db, "CONS", 75.00)
	xray := seedService(t, db, "XRAY", 120.00)

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	appt, err := scheduling.Book(ctx, service.BookingRequest{
		PatientID:  p.ID,
		DoctorID:   d.ID,
		Start:      start,
		End:        start.Add(time.Hour),
		ServiceIDs: []uuid.UUID{consult.ID, xray.ID},
		Quantities: map[uuid.UUID]int{xray.ID: 2},
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	// The invoice bills the booking-time snapshot, so a later catalog
	// price change must not leak in.
	if err := db.Model(&model.Service{}).Where("id = ?", consult.ID).Update("price", 200.00).Error; err != nil {
		t.Fatalf("update price: %v", err)
	}

	inv, err := billing.InvoiceForAppointment(ctx, appt.ID, nil)
	if err != nil {
		t.Fatalf("invoice for appointment: %v", err)
	}
	if inv.TotalAmount != 315.00 { // 75 + 2*120
		t.Fatalf("total = %v, want 315.00", inv.TotalAmount)
	}
	if inv.PatientID != p.ID {
		t.Fatalf("patient = %s, want %s", inv.PatientID, p.ID)
	}
	if inv.AppointmentID == nil || *inv.AppointmentID != appt.ID {
		t.Fatalf("appointment ref = %v, want %s", inv.AppointmentID, appt.ID)
	}
}

func TestInvoiceForAppointmentWithoutLines(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	svc := newBillingService(db)

	p := seedPatient(t, db, "Ivan")
	d := seedDoctor(t, db, "LIC-001")
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	appt := seedAppointment(t, db, p.ID, d.ID, start, start.Add(time.Hour))

	_, err := svc.InvoiceForAppointment(ctx, appt.ID, nil)
	if !errors.Is(err, service.ErrNoBillableLines) {
		t.Fatalf("err = %v, want ErrNoBillableLines", err)
	}
}

func TestVoidOnlyPending(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	svc := newBillingService(db)
	p := seedPatient(t, db, "Ivan")

	inv, err := svc.CreateInvoice(ctx, p.ID, nil, nil, []service.InvoiceLine{
		{Description: "consultation", Quantity: 1, UnitPrice: 50},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	if err := svc.MarkPaid(ctx, inv.ID); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if err := svc.Void(ctx, inv.ID); !errors.Is(err, service.ErrInvoiceNotVoid) {
		t.Fatalf("err = %v, want ErrInvoiceNotVoid for a paid invoice", err)
	}

	pending, err := svc.CreateInvoice(ctx, p.ID, nil, nil, []service.InvoiceLine{
		{Description: "consultation", Quantity: 1, UnitPrice: 50},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if err := svc.Void(ctx, pending.ID); err != nil {
		t.Fatalf("void pending: %v", err)
	}
}

func TestRecomputeTotal(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	svc := newBillingService(db)
	p := seedPatient(t, db, "Ivan")

	inv, err := svc.CreateInvoice(ctx, p.ID, nil, nil, []service.InvoiceLine{
		{Description: "consultation", Quantity: 1, UnitPrice: 50},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	// An item added out-of-band leaves the stored total stale until a
	// recompute.
	extra := model.InvoiceItem{
		ID:          uuid.New(),
		InvoiceID:   inv.ID,
		Description: "supplies",
		Quantity:    2,
		UnitPrice:   10,
	}
	if err := db.Create(&extra).Error; err != nil {
		t.Fatalf("add item: %v", err)
	}

	total, err := svc.RecomputeTotal(ctx, inv.ID)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if total != 70 {
		t.Fatalf("total = %v, want 70", total)
	}

	var got model.Invoice
	if err := db.First(&got, "id = ?", inv.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.TotalAmount != 70 {
		t.Fatalf("stored total = %v, want 70", got.TotalAmount)
	}
}
