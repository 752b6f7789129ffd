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
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_available_slots"
	getOperatingSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_operating_slots"
	getProfileHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_profile"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_user_reservations"
	listFoodPackagesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_food_packages"
	listReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_reservations"
	listRoomsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_rooms"
	manageFoodPackagesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/manage_food_packages"
	manageRoomsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/manage_rooms"
	updateProfileHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_profile"
	updateReservationStatusHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_reservation_status"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/cache/availability"
	foodPackageRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/foodpackage"
	profileRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/profile"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/room"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/events"
	userServiceClient "github.com/m04kA/SMC-ReservationService/internal/integrations/userservice"
	catalogService "github.com/m04kA/SMC-ReservationService/internal/service/catalog"
	"github.com/m04kA/SMC-ReservationService/internal/service/ledger"
	profileService "github.com/m04kA/SMC-ReservationService/internal/service/profile"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// availabilityCache общий контракт Redis-кеша и его заглушки
type availabilityCache interface {
	Get(ctx context.Context, date time.Time, roomID *int64) ([]domain.AvailableSlot, bool, error)
	Version(ctx context.Context, date time.Time) (string, error)
	Set(ctx context.Context, date time.Time, roomID *int64, version string, slots []domain.AvailableSlot) (bool, error)
	Invalidate(ctx context.Context, date time.Time) error
	Flush(ctx context.Context) error
}

// eventPublisher общий контракт RabbitMQ-паблишера и его заглушки
type eventPublisher interface {
	ReservationCreated(ctx context.Context, res *domain.Reservation) error
	StatusChanged(ctx context.Context, res *domain.Reservation, previous domain.ReservationStatus) error
}

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

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Restaurant.Location()
	if err != nil {
		log.Fatal("Invalid restaurant timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Обёртка над пулом: метрики запросов только при включённых метриках
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	roomRepository := roomRepo.NewRepository(wrappedDB)
	foodPackageRepository := foodPackageRepo.NewRepository(wrappedDB)
	profileRepository := profileRepo.NewRepository(wrappedDB)

	// Кеш доступности (Redis необязателен)
	var cache availabilityCache = availability.NoopCache{}
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			// Кеш не критичен: работаем напрямую с БД
			log.Warn("Redis is unavailable, availability cache disabled: %v", err)
			_ = redisClient.Close()
			redisClient = nil
		} else {
			cache = availability.NewCache(redisClient, cfg.Redis.CacheTTL())
			log.Info("Availability cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
		}
	}

	// Публикация доменных событий (RabbitMQ необязателен)
	var publisher eventPublisher = events.NoopPublisher{}
	var amqpPublisher *events.Publisher
	if cfg.RabbitMQ.Enabled {
		amqpPublisher, err = events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Warn("RabbitMQ is unavailable, reservation events disabled: %v", err)
		} else {
			publisher = amqpPublisher
			log.Info("Reservation events enabled (exchange=%s)", cfg.RabbitMQ.Exchange)
		}
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем сервисы
	profileProvider := profileService.NewProvider(
		profileRepository,
		cache,
		cfg.Restaurant.DefaultProfile(),
		log,
	)
	if err := profileProvider.Init(context.Background()); err != nil {
		log.Fatal("Failed to initialize restaurant profile: %v", err)
	}

	catalogSvc := catalogService.NewService(
		roomRepository,
		foodPackageRepository,
		cache,
		log,
	)
	capacityLedger := ledger.New(reservationRepository)

	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		catalogSvc,
		capacityLedger,
		userClient,
		txMgr,
		cache,
		publisher,
		location,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		profileProvider,
		catalogSvc,
		capacityLedger,
		userClient,
		txMgr,
		cache,
		publisher,
		metricsCollector,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		profileProvider,
		catalogSvc,
		capacityLedger,
		cache,
		location,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	getProfile := getProfileHandler.NewHandler(profileProvider, log)
	updateProfile := updateProfileHandler.NewHandler(profileProvider, log)
	getOperatingSlots := getOperatingSlotsHandler.NewHandler(profileProvider, log)
	listRooms := listRoomsHandler.NewHandler(catalogSvc, log)
	manageRooms := manageRoomsHandler.NewHandler(catalogSvc, log)
	listFoodPackages := listFoodPackagesHandler.NewHandler(catalogSvc, log)
	manageFoodPackages := manageFoodPackagesHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность слотов на дату (по комнате или по всем комнатам)
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Сетка слотов по часам работы
	api.HandleFunc("/operating-slots", getOperatingSlots.Handle).Methods(http.MethodGet)

	// Профиль ресторана и каталог
	api.HandleFunc("/profile", getProfile.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)
	api.HandleFunc("/food-packages", listFoodPackages.Handle).Methods(http.MethodGet)

	// Создание бронирования: гость без аккаунта или пользователь с X-User-ID
	api.Handle("/reservations",
		middleware.OptionalAuth(http.HandlerFunc(createReservation.Handle))).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Получение бронирования по ID (владелец или персонал)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования владельцем до начала слота
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/me/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (X-User-ID персонала ресторана)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth)
	admin.Use(middleware.RequireStaff(userClient, log))

	// --- Бронирования ---
	admin.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// --- Профиль ресторана ---
	admin.HandleFunc("/profile", updateProfile.Handle).Methods(http.MethodPut)

	// --- Комнаты ---
	admin.HandleFunc("/rooms", manageRooms.Create).Methods(http.MethodPost)
	admin.HandleFunc("/rooms/{roomId}", manageRooms.Update).Methods(http.MethodPut)
	admin.HandleFunc("/rooms/{roomId}", manageRooms.Delete).Methods(http.MethodDelete)

	// --- Пакеты питания ---
	admin.HandleFunc("/food-packages", manageFoodPackages.Create).Methods(http.MethodPost)
	admin.HandleFunc("/food-packages/{packageId}", manageFoodPackages.Update).Methods(http.MethodPut)
	admin.HandleFunc("/food-packages/{packageId}", manageFoodPackages.Delete).Methods(http.MethodDelete)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if amqpPublisher != nil {
		if err := amqpPublisher.Close(); err != nil {
			log.Warn("Failed to close RabbitMQ publisher: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("Failed to close Redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
