package main

import (
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"isafari/internal/config"
	"isafari/internal/handlers"
	"isafari/internal/repositories"
	"isafari/internal/services"
	"isafari/utils"
)

type application struct {
	log    *zap.SugaredLogger
	tokens *utils.Manager
	hub    *NotificationHub

	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	serviceHandler      *handlers.ServiceHandler
	providerHandler     *handlers.ProviderHandler
	bookingHandler      *handlers.BookingHandler
	reviewHandler       *handlers.ReviewHandler
	paymentHandler      *handlers.PaymentHandler
	notificationHandler *handlers.NotificationHandler
	cartHandler         *handlers.CartHandler
	planHandler         *handlers.PlanHandler
	favoriteHandler     *handlers.FavoriteHandler
	journeyHandler      *handlers.JourneyHandler
	storyHandler        *handlers.StoryHandler
	adminHandler        *handlers.AdminHandler
	uploadHandler       *handlers.UploadHandler
	healthHandler       *handlers.HealthHandler

	serviceService *services.ServiceService
}

type appDeps struct {
	cfg     config.Config
	db      *sql.DB
	redis   *redis.Client
	storage *utils.Storage
	tokens  *utils.Manager
	pusher  services.Pusher
	hub     *NotificationHub
	log     *zap.SugaredLogger
}

func initializeApp(d appDeps) *application {
	// Repositories
	userRepo := &repositories.UserRepository{DB: d.db}
	providerRepo := &repositories.ProviderRepository{DB: d.db}
	serviceRepo := &repositories.ServiceRepository{DB: d.db}
	promotionRepo := &repositories.PromotionRepository{DB: d.db}
	bookingRepo := &repositories.BookingRepository{DB: d.db}
	reviewRepo := &repositories.ReviewRepository{DB: d.db}
	paymentRepo := &repositories.PaymentRepository{DB: d.db}
	notificationRepo := &repositories.NotificationRepository{DB: d.db}
	cartRepo := &repositories.CartRepository{DB: d.db}
	planRepo := &repositories.PlanRepository{DB: d.db}
	favoriteRepo := &repositories.FavoriteRepository{DB: d.db}
	journeyRepo := &repositories.JourneyRepository{DB: d.db}
	storyRepo := &repositories.StoryRepository{DB: d.db}
	resetTokens := repositories.NewResetTokenStore(d.redis)

	// Services
	notificationService := &services.NotificationService{
		Repo:  notificationRepo,
		Hub:   d.hub,
		Push:  d.pusher,
		Users: userRepo,
		Log:   d.log,
	}

	authService := &services.AuthService{
		UserRepo:     userRepo,
		ProviderRepo: providerRepo,
		ResetTokens:  resetTokens,
		TokenManager: d.tokens,
		ResetTTL:     d.cfg.PasswordReset.TTL,
		Log:          d.log,
	}
	userService := &services.UserService{UserRepo: userRepo}
	serviceService := &services.ServiceService{
		ServiceRepo:   serviceRepo,
		ProviderRepo:  providerRepo,
		PromotionRepo: promotionRepo,
		Log:           d.log,
	}
	providerService := &services.ProviderService{ProviderRepo: providerRepo, ServiceRepo: serviceRepo}
	bookingService := &services.BookingService{
		BookingRepo:  bookingRepo,
		ProviderRepo: providerRepo,
		Notifier:     notificationService,
		Log:          d.log,
	}
	reviewService := &services.ReviewService{
		ReviewsRepo:  reviewRepo,
		BookingRepo:  bookingRepo,
		ProviderRepo: providerRepo,
		Notifier:     notificationService,
		Log:          d.log,
	}
	paymentService := &services.PaymentService{
		PaymentRepo:  paymentRepo,
		ProviderRepo: providerRepo,
		Notifier:     notificationService,
		Log:          d.log,
	}
	cartService := &services.CartService{CartRepo: cartRepo, Bookings: bookingService}
	planService := &services.PlanService{PlanRepo: planRepo}
	favoriteService := &services.FavoriteService{FavoriteRepo: favoriteRepo, ProviderRepo: providerRepo}
	journeyService := &services.JourneyService{JourneyRepo: journeyRepo}
	storyService := &services.StoryService{StoryRepo: storyRepo, Notifier: notificationService, Log: d.log}
	adminService := &services.AdminService{
		UserRepo:      userRepo,
		ServiceRepo:   serviceRepo,
		ProviderRepo:  providerRepo,
		BookingRepo:   bookingRepo,
		PromotionRepo: promotionRepo,
		Notifier:      notificationService,
		Log:           d.log,
	}
	uploadService := &services.UploadService{Storage: d.storage, Limit: d.cfg.S3.UploadLimit}

	return &application{
		log:    d.log,
		tokens: d.tokens,
		hub:    d.hub,

		authHandler:         &handlers.AuthHandler{Service: authService, Log: d.log},
		userHandler:         &handlers.UserHandler{Service: userService, Log: d.log},
		serviceHandler:      &handlers.ServiceHandler{Service: serviceService, Log: d.log},
		providerHandler:     &handlers.ProviderHandler{Service: providerService, Log: d.log},
		bookingHandler:      &handlers.BookingHandler{Service: bookingService, Log: d.log},
		reviewHandler:       &handlers.ReviewHandler{Service: reviewService, Log: d.log},
		paymentHandler:      &handlers.PaymentHandler{Service: paymentService, Log: d.log},
		notificationHandler: &handlers.NotificationHandler{Service: notificationService, Log: d.log},
		cartHandler:         &handlers.CartHandler{Service: cartService, Log: d.log},
		planHandler:         &handlers.PlanHandler{Service: planService, Log: d.log},
		favoriteHandler:     &handlers.FavoriteHandler{Service: favoriteService, Log: d.log},
		journeyHandler:      &handlers.JourneyHandler{Service: journeyService, Log: d.log},
		storyHandler:        &handlers.StoryHandler{Service: storyService, Log: d.log},
		adminHandler:        &handlers.AdminHandler{Service: adminService, Log: d.log},
		uploadHandler:       &handlers.UploadHandler{Service: uploadService, Log: d.log},
		healthHandler:       &handlers.HealthHandler{DB: d.db, Redis: d.redis, Log: d.log},

		serviceService: serviceService,
	}
}
