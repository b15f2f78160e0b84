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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/eduhub/WSB-BookingService/internal/api/handlers/cancel_reservation"
	cancelWithReasonHandler "github.com/eduhub/WSB-BookingService/internal/api/handlers/cancel_with_reason"
	createReservationHandler "github.com/eduhub/WSB-BookingService/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/eduhub/WSB-BookingService/internal/api/handlers/delete_reservation"
	getAvailableSlotsHandler "github.com/eduhub/WSB-BookingService/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/eduhub/WSB-BookingService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/eduhub/WSB-BookingService/internal/api/handlers/get_user_reservations"
	getWorkstationReservationsHandler "github.com/eduhub/WSB-BookingService/internal/api/handlers/get_workstation_reservations"
	setReservationStatusHandler "github.com/eduhub/WSB-BookingService/internal/api/handlers/set_reservation_status"
	updateReservationHandler "github.com/eduhub/WSB-BookingService/internal/api/handlers/update_reservation"
	"github.com/eduhub/WSB-BookingService/internal/api/middleware"
	"github.com/eduhub/WSB-BookingService/internal/config"
	reservationRepo "github.com/eduhub/WSB-BookingService/internal/infra/storage/reservation"
	workstationRepo "github.com/eduhub/WSB-BookingService/internal/infra/storage/workstation"
	userServiceClient "github.com/eduhub/WSB-BookingService/internal/integrations/userservice"
	"github.com/eduhub/WSB-BookingService/internal/policy"
	"github.com/eduhub/WSB-BookingService/internal/scheduling"
	reservationsService "github.com/eduhub/WSB-BookingService/internal/service/reservations"
	createReservationUC "github.com/eduhub/WSB-BookingService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/eduhub/WSB-BookingService/internal/usecase/get_available_slots"
	"github.com/eduhub/WSB-BookingService/pkg/dbmetrics"
	"github.com/eduhub/WSB-BookingService/pkg/logger"
	"github.com/eduhub/WSB-BookingService/pkg/metrics"
	"github.com/eduhub/WSB-BookingService/pkg/simpletxmanager"
	"github.com/eduhub/WSB-BookingService/pkg/txmanager"
	"github.com/eduhub/WSB-BookingService/pkg/types"
)

func main() {
	// Подхватываем .env (DB_PASSWORD и прочие секреты), отсутствие файла не ошибка
	_ = godotenv.Load()

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

	log.Info("Starting WSB-BookingService...")
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

	// Инициализируем клиента UserService
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("UserService client initialized (url=%s, timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Собираем сетку слотов и политики из конфигурации
	openTime, err := types.NewTimeStringFromString(cfg.Booking.OpenTime)
	if err != nil {
		log.Fatal("Invalid booking.open_time: %v", err)
	}
	closeTime, err := types.NewTimeStringFromString(cfg.Booking.CloseTime)
	if err != nil {
		log.Fatal("Invalid booking.close_time: %v", err)
	}

	generator, err := scheduling.NewGenerator(openTime, closeTime, cfg.Booking.SlotDurationMinutes)
	if err != nil {
		log.Fatal("Failed to build slot generator: %v", err)
	}

	rules := policy.Rules{
		StudentMaxDurationHours: cfg.Booking.StudentMaxDurationHours,
		DefaultMaxDurationHours: cfg.Booking.MaxDurationHours,
		CooldownMinutes:         cfg.Booking.CooldownMinutes,
		CancellationLockMinutes: cfg.Booking.CancellationLockMinutes,
	}
	durationPolicy := policy.NewDurationPolicy(rules)
	cooldownPolicy := policy.NewCooldownPolicy(rules)
	cancellationPolicy := policy.NewCancellationPolicy(rules)
	log.Info("Booking policies initialized (hours=%s-%s, slot=%dmin, cooldown=%dmin, lock=%dmin)",
		cfg.Booking.OpenTime, cfg.Booking.CloseTime, cfg.Booking.SlotDurationMinutes,
		cfg.Booking.CooldownMinutes, cfg.Booking.CancellationLockMinutes)

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		workstationRepository *workstationRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		workstationRepository = workstationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		workstationRepository = workstationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		workstationRepository,
		userClient,
		txMgr,
		durationPolicy,
		cancellationPolicy,
		generator,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		workstationRepository,
		userClient,
		txMgr,
		generator,
		durationPolicy,
		cooldownPolicy,
		createReservationUC.Settings{
			MinNoticeMinutes: cfg.Booking.MinNoticeMinutes,
			AutoConfirm:      cfg.Booking.AutoConfirm,
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		workstationRepository,
		generator,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	updateReservation := updateReservationHandler.NewHandler(reservationSvc, log)
	setReservationStatus := setReservationStatusHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	cancelWithReason := cancelWithReasonHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getWorkstationReservations := getWorkstationReservationsHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка слотов рабочего места на дату
	api.HandleFunc("/workstations/{workstationId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Редактирование интервала (только pending)
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPatch)

	// Переход статуса: подтверждение / отклонение / завершение
	protected.HandleFunc("/reservations/{reservationId}/status",
		setReservationStatus.Handle).Methods(http.MethodPatch)

	// Отмена без причины
	protected.HandleFunc("/reservations/{reservationId}/cancel",
		cancelReservation.Handle).Methods(http.MethodPatch)

	// Привилегированная отмена с причиной
	protected.HandleFunc("/reservations/{reservationId}/cancel-with-reason",
		cancelWithReason.Handle).Methods(http.MethodPatch)

	// Удаление завершенной брони
	protected.HandleFunc("/reservations/{reservationId}",
		deleteReservation.Handle).Methods(http.MethodDelete)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations",
		getUserReservations.Handle).Methods(http.MethodGet)

	// Брони рабочего места на дату (для менеджеров)
	protected.HandleFunc("/workstations/{workstationId}/reservations",
		getWorkstationReservations.Handle).Methods(http.MethodGet)

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
