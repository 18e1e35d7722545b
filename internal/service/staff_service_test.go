package service_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/model"
	"github.com/clinova/clinic-core/internal/repository"
	"github.com/clinova/clinic-core/internal/service"
	"github.com/clinova/clinic-core/internal/testdb"
)

func TestProvision(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	svc := service.NewStaffService(repository.NewGormUserRepository(db), zap.NewNop())

	u, err := svc.Provision(ctx, "frontdesk", "frontdesk@clinic.test", "s3cret", "Front Desk", model.UserRoleReceptionist)
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if !u.IsActive {
		t.Fatal("new account not active")
	}
	if u.PasswordHash == "s3cret" {
		t.Fatal("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	_, err = svc.Provision(ctx, "x", "x@clinic.test", "pw", "", "janitor")
	if !errors.Is(err, service.ErrUnknownRole) {
		t.Fatalf("err = %v, want ErrUnknownRole", err)
	}
	_, err = svc.Provision(ctx, "x", "x@clinic.test", "", "", model.UserRoleNurse)
	if !errors.Is(err, service.ErrEmptyPassword) {
		t.Fatalf("err = %v, want ErrEmptyPassword", err)
	}

	// Taken username surfaces as the duplicate-key sentinel.
	_, err = svc.Provision(ctx, "frontdesk", "other@clinic.test", "pw", "", model.UserRoleReceptionist)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("err = %v, want ErrDuplicatedKey", err)
	}
}

func TestChangePassword(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := repository.NewGormUserRepository(db)
	svc := service.NewStaffService(repo, zap.NewNop())

	u, err := svc.Provision(ctx, "nurse1", "nurse1@clinic.test", "old", "", model.UserRoleNurse)
	if err != nil {
		t.Fatalf("provision: %v", err)
	}

	if err := svc.ChangePassword(ctx, u.ID, "new"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("new")); err != nil {
		t.Fatalf("new password does not verify: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("old")); err == nil {
		t.Fatal("old password still verifies")
	}

	if err := svc.ChangePassword(ctx, u.ID, ""); !errors.Is(err, service.ErrEmptyPassword) {
		t.Fatalf("err = %v, want ErrEmptyPassword", err)
	}
}

func TestDeactivateReactivate(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := repository.NewGormUserRepository(db)
	svc := service.NewStaffService(repo, zap.NewNop())

	u, err := svc.Provision(ctx, "acct", "acct@clinic.test", "pw", "", model.UserRoleAccountant)
	if err != nil {
		t.Fatalf("provision: %v", err)
	}

	if err := svc.Deactivate(ctx, u.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	got, _ := repo.GetByID(ctx, u.ID)
	if got.IsActive {
		t.Fatal("account still active after deactivation")
	}

	if err := svc.Reactivate(ctx, u.ID); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	got, _ = repo.GetByID(ctx, u.ID)
	if !got.IsActive {
		t.Fatal("account inactive after reactivation")
	}
}

func TestChangeRole(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := repository.NewGormUserRepository(db)
	svc := service.NewStaffService(repo, zap.NewNop())

	u, err := svc.Provision(ctx, "floater", "floater@clinic.test", "pw", "", model.UserRoleNurse)
	if err != nil {
		t.Fatalf("provision: %v", err)
	}

	if err := svc.ChangeRole(ctx, u.ID, model.UserRolePharmacist); err != nil {
		t.Fatalf("change role: %v", err)
	}
	got, _ := repo.GetByID(ctx, u.ID)
	if got.Role != model.UserRolePharmacist {
		t.Fatalf("role = %s, want pharmacist", got.Role)
	}

	if err := svc.ChangeRole(ctx, u.ID, "janitor"); !errors.Is(err, service.ErrUnknownRole) {
		t.Fatalf("err = %v, want ErrUnknownRole", err)
	}
}
