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

	adminLoginHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/admin_login"
	adminLogoutHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/admin_logout"
	cancelBookingHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/create_booking"
	createServiceHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/delete_service"
	getAvailableSlotsHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/get_booking"
	getScheduleHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/get_schedule"
	getStatisticsHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/get_statistics"
	listBookingsHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/list_bookings"
	listNotificationsHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/list_notifications"
	listServicesHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/list_services"
	markNotificationReadHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/mark_notification_read"
	subscribePushHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/subscribe_push"
	toggleServiceHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/toggle_service"
	updateServiceHandler "github.com/camp-taezhny/BookingService/internal/api/handlers/update_service"
	"github.com/camp-taezhny/BookingService/internal/api/middleware"
	"github.com/camp-taezhny/BookingService/internal/config"
	adminUserRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/adminuser"
	bookingRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/booking"
	notificationRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/notification"
	serviceRepo "github.com/camp-taezhny/BookingService/internal/infra/storage/service"
	webpushClient "github.com/camp-taezhny/BookingService/internal/integrations/webpush"
	"github.com/camp-taezhny/BookingService/internal/scheduler"
	authService "github.com/camp-taezhny/BookingService/internal/service/auth"
	bookingsService "github.com/camp-taezhny/BookingService/internal/service/bookings"
	notificationsService "github.com/camp-taezhny/BookingService/internal/service/notifications"
	servicesService "github.com/camp-taezhny/BookingService/internal/service/services"
	createBookingUC "github.com/camp-taezhny/BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/camp-taezhny/BookingService/internal/usecase/get_available_slots"
	"github.com/camp-taezhny/BookingService/pkg/dbmetrics"
	"github.com/camp-taezhny/BookingService/pkg/logger"
	"github.com/camp-taezhny/BookingService/pkg/metrics"
	"github.com/camp-taezhny/BookingService/pkg/simpletxmanager"
	"github.com/camp-taezhny/BookingService/pkg/txmanager"
	"github.com/camp-taezhny/BookingService/pkg/types"
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

	log.Info("Starting Camp-BookingService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		serviceRepository      *serviceRepo.Repository
		notificationRepository *notificationRepo.Repository
		adminUserRepository    *adminUserRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		notificationRepository = notificationRepo.NewRepository(wrappedDB)
		adminUserRepository = adminUserRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		notificationRepository = notificationRepo.NewRepository(db)
		adminUserRepository = adminUserRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем push-клиент, если заданы VAPID-ключи
	var push notificationsService.PushClient
	if cfg.Push.Enabled() {
		push = webpushClient.NewClient(
			cfg.Push.VAPIDPublicKey,
			cfg.Push.VAPIDPrivateKey,
			cfg.Push.Subscriber,
			cfg.Push.TTLSeconds,
			log,
		)
		log.Info("Web-push client initialized (subscriber=%s, ttl=%ds)",
			cfg.Push.Subscriber, cfg.Push.TTLSeconds)
	} else {
		log.Warn("VAPID keys are not configured, push delivery disabled")
	}

	// Инициализируем сервисы
	notificationsSvc := notificationsService.NewService(
		notificationRepository,
		bookingRepository,
		push,
		log,
	)
	bookingsSvc := bookingsService.NewService(
		bookingRepository,
		notificationsSvc,
		log,
	)
	servicesSvc := servicesService.NewService(
		serviceRepository,
		bookingRepository,
		servicesService.Settings{
			DefaultRequiredDocuments: cfg.Booking.DefaultRequiredDocuments,
			Priorities:               cfg.Booking.ServicePriorities,
		},
		log,
	)
	authSvc := authService.NewService(adminUserRepository, cfg.Admin.SessionTTL(), log)

	// Создаем учетную запись администратора при первом запуске
	if err := authSvc.Bootstrap(context.Background(), cfg.Admin.BootstrapUsername, cfg.Admin.BootstrapPassword); err != nil {
		log.Fatal("Failed to bootstrap admin user: %v", err)
	}

	// Рабочее окно и сетка слотов из конфигурации
	openTime, err := types.NewTimeStringFromString(cfg.Booking.OpenTime)
	if err != nil {
		log.Fatal("Invalid open_time: %v", err)
	}
	closeTime, err := types.NewTimeStringFromString(cfg.Booking.CloseTime)
	if err != nil {
		log.Fatal("Invalid close_time: %v", err)
	}
	timeSlots, err := cfg.Booking.TimeSlots()
	if err != nil {
		log.Fatal("Failed to build slot grid: %v", err)
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		txMgr,
		createBookingUC.Settings{
			MaxPerSlot: cfg.Booking.MaxPerSlot,
			DaysAhead:  cfg.Booking.DaysAhead,
			OpenTime:   openTime,
			CloseTime:  closeTime,
			Camps:      cfg.Booking.Camps,
		},
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		getAvailableSlotsUC.Settings{
			MaxPerSlot: cfg.Booking.MaxPerSlot,
			DaysAhead:  cfg.Booking.DaysAhead,
			TimeSlots:  timeSlots,
		},
		log,
	)

	// Запускаем планировщик напоминаний
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	reminderScheduler := scheduler.New(bookingRepository, notificationsSvc, cfg.Scheduler.Interval(), log)
	go reminderScheduler.Run(schedulerCtx)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	listServices := listServicesHandler.NewHandler(servicesSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	subscribePush := subscribePushHandler.NewHandler(notificationsSvc, log)
	listNotifications := listNotificationsHandler.NewHandler(notificationsSvc, log)
	markNotificationRead := markNotificationReadHandler.NewHandler(notificationsSvc, log)
	adminLogin := adminLoginHandler.NewHandler(authSvc, log)
	adminLogout := adminLogoutHandler.NewHandler(authSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingsSvc, log)
	createService := createServiceHandler.NewHandler(servicesSvc, log)
	updateService := updateServiceHandler.NewHandler(servicesSvc, log)
	toggleService := toggleServiceHandler.NewHandler(servicesSvc, log)
	deleteService := deleteServiceHandler.NewHandler(servicesSvc, log)
	getSchedule := getScheduleHandler.NewHandler(bookingsSvc, log)
	getStatistics := getStatisticsHandler.NewHandler(bookingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Витрина услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Доступные слоты на дату
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Поиск бронирования по номеру брони
	api.HandleFunc("/bookings/{reference}", getBooking.Handle).Methods(http.MethodGet)

	// Push-подписка бронирования
	api.HandleFunc("/bookings/{bookingId:[0-9]+}/push-subscription",
		subscribePush.Handle).Methods(http.MethodPost)

	// Уведомления пользователя
	api.HandleFunc("/notifications", listNotifications.Handle).Methods(http.MethodGet)
	api.HandleFunc("/notifications/unread-count", listNotifications.HandleUnreadCount).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id:[0-9]+}/read", markNotificationRead.Handle).Methods(http.MethodPost)

	// Вход администратора
	api.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(authSvc, log))

	admin.HandleFunc("/logout", adminLogout.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// --- Услуги ---
	admin.HandleFunc("/services", listServices.HandleAdmin).Methods(http.MethodGet)
	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id:[0-9]+}", updateService.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id:[0-9]+}/toggle", toggleService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id:[0-9]+}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Расписание и статистика ---
	admin.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/statistics", getStatistics.Handle).Methods(http.MethodGet)

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

	// Останавливаем планировщик напоминаний
	stopScheduler()

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
