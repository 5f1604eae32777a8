package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"school-backend/internal/auth"
	"school-backend/internal/cache"
	"school-backend/internal/config"
	"school-backend/internal/database"
	"school-backend/internal/db"
	"school-backend/internal/handlers"
	"school-backend/internal/health"
	apphttp "school-backend/internal/http"
	"school-backend/internal/middleware"
	"school-backend/internal/monitoring"
	"school-backend/internal/repositories"
	"school-backend/internal/services"
	"school-backend/migrations"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	migrator := database.NewMigrator(pool, migrations.FS)
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	cancel()

	if err := cache.Init(); err != nil {
		logger.Printf("[Cache] Redis unavailable, running without cache: %v", err)
	} else {
		logger.Println("[Cache] Redis connected")
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	teacherRepo := repositories.NewTeacherRepository(pool)
	studentRepo := repositories.NewStudentRepository(pool)
	feeStructureRepo := repositories.NewFeeStructureRepository(pool)
	feeSummaryRepo := repositories.NewFeeSummaryRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	onlineTxnRepo := repositories.NewOnlineTransactionRepository(pool)

	// Ops dashboard on its own port; it doubles as the alert sink for
	// payment failures.
	monitor := monitoring.NewServer(pool, cfg.Server.MonitoringPort)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(userRepo, teacherRepo, jwtManager, logger)
	totpService := services.NewTOTPService(userRepo, jwtManager, logger)
	teacherService := services.NewTeacherService(teacherRepo, logger)
	studentService := services.NewStudentService(studentRepo, teacherRepo, logger)
	feeStructureService := services.NewFeeStructureService(feeStructureRepo, logger)
	paymentService := services.NewPaymentService(pool, studentRepo, feeStructureRepo,
		feeSummaryRepo, paymentRepo, monitor, logger)
	receiptService := services.NewReceiptService(paymentService)
	razorpayService := services.NewRazorpayService(
		cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.WebhookSecret,
		onlineTxnRepo, paymentService, studentRepo, monitor, logger)
	storageService, err := services.NewStorageService(cfg, logger)
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, totpService)
	teacherHandler := handlers.NewTeacherHandler(teacherService)
	studentHandler := handlers.NewStudentHandler(studentService, storageService)
	feeStructureHandler := handlers.NewFeeStructureHandler(feeStructureService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, receiptService)
	razorpayHandler := handlers.NewRazorpayHandler(razorpayService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := apphttp.NewRouter(
		authHandler,
		studentHandler,
		teacherHandler,
		feeStructureHandler,
		paymentHandler,
		razorpayHandler,
		healthHandler,
		authMiddleware,
	)

	corsHandler := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsHandler(router)))

	go monitor.Start()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Printf("[Server] listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
