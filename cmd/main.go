package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	deleteServiceHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_service"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getDiscountsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_discounts"
	getTodayHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_today"
	getWorkingHoursHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_working_hours"
	listAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_appointments"
	listServicesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_services"
	previewAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/preview_appointment"
	setDiscountsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/set_discounts"
	setWorkingHoursHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/set_working_hours"
	updateAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment"
	upsertServicesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/upsert_services"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	discountRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/discount"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	stylistRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/stylist"
	clientServiceClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/clientservice"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	pricingService "github.com/m04kA/SMC-AppointmentService/internal/service/pricing"
	settingsService "github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	previewAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/preview_appointment"
	updateAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционного клиента
	clientClient := clientServiceClient.NewClient(
		cfg.ClientService.URL,
		time.Duration(cfg.ClientService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (ClientService=%s timeout=%ds)",
		cfg.ClientService.URL, cfg.ClientService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		catalogRepository     *catalogRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		discountRepository    *discountRepo.Repository
		stylistRepository     *stylistRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		discountRepository = discountRepo.NewRepository(wrappedDB)
		stylistRepository = stylistRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		discountRepository = discountRepo.NewRepository(db)
		stylistRepository = stylistRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	pricingSvc := pricingService.NewService(
		discountRepository,
		stylistRepository,
		appointmentRepository,
		log,
		cfg.Pricing.TaxRate,
		cfg.Pricing.CardFeeRate,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		stylistRepository,
		&appointmentsService.RealTimeProvider{},
		log,
		cfg.Pricing.TaxRate,
		cfg.Pricing.CardFeeRate,
	)
	settingsSvc := settingsService.NewService(
		scheduleRepository,
		discountRepository,
		catalogRepository,
		appointmentRepository,
		stylistRepository,
		txMgr,
		&settingsService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		scheduleRepository,
		stylistRepository,
		pricingSvc,
		clientClient,
		txMgr,
		log,
	)
	previewAppointmentUseCase := previewAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		stylistRepository,
		pricingSvc,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		stylistRepository,
		pricingSvc,
		txMgr,
		log,
		cfg.Pricing.TaxRate,
		cfg.Pricing.CardFeeRate,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	previewAppointment := previewAppointmentHandler.NewHandler(previewAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getToday := getTodayHandler.NewHandler(appointmentsSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(settingsSvc, log)
	setWorkingHours := setWorkingHoursHandler.NewHandler(settingsSvc, log)
	getDiscounts := getDiscountsHandler.NewHandler(settingsSvc, log)
	setDiscounts := setDiscountsHandler.NewHandler(settingsSvc, log)
	listServices := listServicesHandler.NewHandler(settingsSvc, log)
	upsertServices := upsertServicesHandler.NewHandler(settingsSvc, log)
	deleteService := deleteServiceHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все маршруты требуют X-Stylist-ID header
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи (опционально ?force_start=true)
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Предпросмотр цены и конфликтов без создания записи
	protected.HandleFunc("/appointments/preview", previewAppointment.Handle).Methods(http.MethodPost)

	// Список записей стилиста
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Получение записи по UUID
	protected.HandleFunc("/appointments/{appointmentUuid}", getAppointment.Handle).Methods(http.MethodGet)

	// Смена статуса записи (включая чекаут)
	protected.HandleFunc("/appointments/{appointmentUuid}", updateAppointment.Handle).Methods(http.MethodPatch)

	// Отмена записи стилистом
	protected.HandleFunc("/appointments/{appointmentUuid}", cancelAppointment.Handle).Methods(http.MethodDelete)

	// --- Кабинет стилиста ---
	// Сводка дня
	protected.HandleFunc("/stylist/today", getToday.Handle).Methods(http.MethodGet)

	// Рабочее расписание
	protected.HandleFunc("/stylist/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/stylist/working-hours", setWorkingHours.Handle).Methods(http.MethodPost)

	// Скидки
	protected.HandleFunc("/stylist/discounts", getDiscounts.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/stylist/discounts", setDiscounts.Handle).Methods(http.MethodPost)

	// Каталог услуг
	protected.HandleFunc("/stylist/services", listServices.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/stylist/services", upsertServices.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/stylist/services/{serviceUuid}", deleteService.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
