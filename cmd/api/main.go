package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gb4everrr/fettlemed-backend/internal/config"
	"github.com/gb4everrr/fettlemed-backend/internal/handler"
	appointmentHandler "github.com/gb4everrr/fettlemed-backend/internal/handler/appointment"
	authHandler "github.com/gb4everrr/fettlemed-backend/internal/handler/auth"
	availabilityHandler "github.com/gb4everrr/fettlemed-backend/internal/handler/availability"
	clinicHandler "github.com/gb4everrr/fettlemed-backend/internal/handler/clinic"
	clinicUserHandler "github.com/gb4everrr/fettlemed-backend/internal/handler/clinicuser"
	healthHandler "github.com/gb4everrr/fettlemed-backend/internal/handler/health"
	invoiceHandler "github.com/gb4everrr/fettlemed-backend/internal/handler/invoice"
	medicalHandler "github.com/gb4everrr/fettlemed-backend/internal/handler/medical"
	patientHandler "github.com/gb4everrr/fettlemed-backend/internal/handler/patient"
	vitalsHandler "github.com/gb4everrr/fettlemed-backend/internal/handler/vitals"
	"github.com/gb4everrr/fettlemed-backend/internal/middleware"
	"github.com/gb4everrr/fettlemed-backend/internal/repository/postgres"
	"github.com/gb4everrr/fettlemed-backend/internal/router"
	authService "github.com/gb4everrr/fettlemed-backend/internal/service/auth"
	availabilityService "github.com/gb4everrr/fettlemed-backend/internal/service/availability"
	clinicService "github.com/gb4everrr/fettlemed-backend/internal/service/clinic"
	invoiceService "github.com/gb4everrr/fettlemed-backend/internal/service/invoice"
	medicalService "github.com/gb4everrr/fettlemed-backend/internal/service/medical"
	patientService "github.com/gb4everrr/fettlemed-backend/internal/service/patient"
	"github.com/gb4everrr/fettlemed-backend/internal/service/scheduling"
	staffService "github.com/gb4everrr/fettlemed-backend/internal/service/staff"
	vitalsService "github.com/gb4everrr/fettlemed-backend/internal/service/vitals"
	"github.com/gb4everrr/fettlemed-backend/pkg/auth"
	"github.com/gb4everrr/fettlemed-backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	clinicRepo := postgres.NewClinicRepository(db)
	staffRepo := postgres.NewStaffAssignmentRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	availabilityRepo := postgres.NewAvailabilityRepository(db)
	slotRepo := postgres.NewSlotRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)
	vitalsRepo := postgres.NewVitalsRepository(db)
	recordRepo := postgres.NewMedicalRecordRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret)

	engine := scheduling.NewEngine(
		availabilityRepo,
		slotRepo,
		clinicRepo,
		time.Duration(cfg.Scheduler.SlotDurationMinutes)*time.Minute,
		cfg.Scheduler.DefaultTimezone,
		appLogger,
	)

	authSvc := authService.NewService(userRepo, jwtSvc)
	clinicSvc := clinicService.NewService(clinicRepo)
	staffSvc := staffService.NewService(staffRepo, doctorRepo, userRepo)
	patientSvc := patientService.NewService(patientRepo, userRepo)
	availabilitySvc := availabilityService.NewService(availabilityRepo, engine, cfg.Scheduler.HorizonDays, appLogger)
	bookingSvc := scheduling.NewBookingService(appointmentRepo, slotRepo, doctorRepo, patientRepo, outboxRepo, engine, appLogger)
	invoiceSvc := invoiceService.NewService(invoiceRepo, patientRepo)
	vitalsSvc := vitalsService.NewService(vitalsRepo, patientRepo)
	medicalSvc := medicalService.NewService(recordRepo, catalogRepo, appointmentRepo, patientRepo, vitalsRepo)

	handler.RegisterValidators()

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)
	gate := middleware.NewRBACMiddleware(staffRepo)

	// Staff role changes must evict cached assignments immediately.
	staffSvc.SetInvalidator(gate)

	r := router.New(
		authMiddleware,
		gate,
		authHandler.NewHandler(authSvc),
		healthHandler.NewHandler(db),
		clinicHandler.NewHandler(clinicSvc),
		clinicUserHandler.NewHandler(staffSvc),
		patientHandler.NewHandler(patientSvc),
		availabilityHandler.NewHandler(availabilitySvc),
		appointmentHandler.NewHandler(bookingSvc, engine),
		invoiceHandler.NewHandler(invoiceSvc),
		vitalsHandler.NewHandler(vitalsSvc),
		medicalHandler.NewHandler(medicalSvc),
		router.Config{
			RateLimitRPS:  100,
			RateBurst:     200,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "fettlemed_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		appLogger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info("server exited properly")
}
