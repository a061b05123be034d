package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/middleware"
	"marketplace/internal/modules/admin"
	"marketplace/internal/modules/auth"
	"marketplace/internal/modules/catalog"
	"marketplace/internal/modules/chat"
	"marketplace/internal/modules/favorite"
	"marketplace/internal/modules/notification"
	"marketplace/internal/modules/order"
	"marketplace/internal/modules/review"
	jwtsvc "marketplace/internal/pkg/jwt"
	"marketplace/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	productRepo := repository.NewProductRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	chatRepo := repository.NewChatRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(businessRepo, productRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	reviewService := review.NewService(reviewRepo, orderRepo, businessRepo, notificationService)
	reviewHandler := review.NewHandler(reviewService)

	orderService := order.NewService(orderRepo, productRepo, businessRepo, notificationService)
	orderHandler := order.NewHandler(orderService)

	adminService := admin.NewService(businessRepo, userRepo, reviewService, notificationService)
	adminHandler := admin.NewHandler(adminService)

	favoriteHandler := favorite.NewHandler(favoriteRepo)

	chatHub := chat.NewHub()
	defer chatHub.Close()
	chatService := chat.NewService(chatRepo, businessRepo, notificationService)
	chatHandler := chat.NewHandler(chatService, chatHub, j)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			reviewHandler.RegisterRoutes(v1, protected)
			orderHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			favoriteHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)

			ownerGroup := protected.Group("/owner")
			ownerGroup.Use(middleware.BusinessOwnerOnly())
			catalogHandler.RegisterOwnerRoutes(ownerGroup)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			adminHandler.RegisterRoutes(adminGroup)
		}
	}

	chatHandler.RegisterWS(r)

	log.Printf("listening addr=%s env=%s", cfg.ListenAddr, cfg.AppEnv)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
