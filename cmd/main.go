package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/clinova/clinic-core/internal/catalog"
	"github.com/clinova/clinic-core/internal/config"
	"github.com/clinova/clinic-core/internal/db"
	"github.com/clinova/clinic-core/internal/handler"
	"github.com/clinova/clinic-core/internal/logger"
	"github.com/clinova/clinic-core/internal/repository"
	"github.com/clinova/clinic-core/internal/service"
)

func main() {
	// 1. Config from env (plus .env in dev).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format, "clinic-core")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	// 2. Database.
	gormDB, err := db.NewGormDB(&cfg.DB)
	if err != nil {
		zlog.Fatal("init db", zap.Error(err))
	}

	// 3. Schema (SQL migrations or AutoMigrate, per MIGRATIONS env).
	if err := db.Migrate(gormDB, &cfg.DB); err != nil {
		zlog.Fatal("migrate", zap.Error(err))
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		zlog.Fatal("sql DB", zap.Error(err))
	}
	defer sqlDB.Close()

	// 4. Repositories.
	userRepo := repository.NewGormUserRepository(gormDB)
	patientRepo := repository.NewGormPatientRepository(gormDB)
	doctorRepo := repository.NewGormDoctorRepository(gormDB)
	specialtyRepo := repository.NewGormSpecialtyRepository(gormDB)
	roomRepo := repository.NewGormRoomRepository(gormDB)
	serviceRepo := repository.NewGormServiceRepository(gormDB)
	medicationRepo := repository.NewGormMedicationRepository(gormDB)
	inventoryRepo := repository.NewGormInventoryRepository(gormDB)
	apptRepo := repository.NewGormAppointmentRepository(gormDB)
	prescriptionRepo := repository.NewGormPrescriptionRepository(gormDB)
	invoiceRepo := repository.NewGormInvoiceRepository(gormDB)

	// 5. Domain services.
	scheduling := service.NewSchedulingService(gormDB, apptRepo, serviceRepo, zlog)
	billing := service.NewBillingService(gormDB, invoiceRepo, apptRepo, zlog)
	pharmacy := service.NewPharmacyService(gormDB, prescriptionRepo, inventoryRepo, zlog)
	staff := service.NewStaffService(userRepo, zlog)

	// 6. Optional redis-backed catalog cache.
	var catalogCache *catalog.Cache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zlog.Warn("redis unreachable, catalog cache disabled", zap.Error(err))
		} else {
			catalogCache = catalog.NewCache(
				catalog.NewRedisKVStore(rdb),
				serviceRepo,
				medicationRepo,
				time.Duration(cfg.Redis.CacheTTLSec)*time.Second,
				zlog,
			)
			defer rdb.Close()
		}
	}

	h := &handler.Handler{
		Users:         userRepo,
		Patients:      patientRepo,
		Doctors:       doctorRepo,
		Specialties:   specialtyRepo,
		Rooms:         roomRepo,
		Services:      serviceRepo,
		Medications:   medicationRepo,
		Inventory:     inventoryRepo,
		Appointments:  apptRepo,
		Prescriptions: prescriptionRepo,
		Invoices:      invoiceRepo,
		Scheduling:    scheduling,
		Billing:       billing,
		Pharmacy:      pharmacy,
		Staff:         staff,
		Catalog:       catalogCache,
		Log:           zlog,
	}

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: h.Router(),
	}

	zlog.Info("clinic core listening", zap.String("addr", cfg.HTTP.Addr))

	// 7. Serve in a goroutine, shut down on signal.
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http serve", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zlog.Info("shutting down http server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
	}
}
