package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/campusbites/campusbites-api/internal/config"
	"github.com/campusbites/campusbites-api/internal/database"
	"github.com/campusbites/campusbites-api/internal/handler"
	"github.com/campusbites/campusbites-api/internal/mailer"
	"github.com/campusbites/campusbites-api/internal/middleware"
	"github.com/campusbites/campusbites-api/internal/payment"
	"github.com/campusbites/campusbites-api/internal/repository"
	"github.com/campusbites/campusbites-api/internal/service"
	"github.com/campusbites/campusbites-api/internal/templates"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	service.ReceiptTemplate = templates.ReceiptHTML

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		if err := database.SeedData(context.Background(), pool); err != nil {
			log.Fatal().Err(err).Msg("failed to seed data")
		}
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	healthHandler := handler.NewHealthHandler(pool)
	router.GET("/health", healthHandler.Health)

	handler.SetupSwagger(router)
	setupAPIRoutes(router, pool, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func setupAPIRoutes(router *gin.Engine, pool *pgxpool.Pool, cfg *config.Config) {
	userRepo := repository.NewUserRepository(pool)
	otpRepo := repository.NewOTPRepository(pool)
	menuRepo := repository.NewMenuRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	mail := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	processor := payment.NewProcessor(payment.Options{
		MinDelay: cfg.PaymentMinDelay,
		MaxDelay: cfg.PaymentMaxDelay,
	})

	otpSvc := service.NewOTPService(otpRepo, mail, cfg.OTPTTL)
	authSvc := service.NewAuthService(userRepo, otpSvc, cfg.JWTSecret, cfg.JWTTTL)
	menuSvc := service.NewMenuService(menuRepo)
	cartSvc := service.NewCartService(cartRepo, menuRepo)
	receiptMailer := service.NewReceiptMailer(mail)
	checkoutSvc := service.NewCheckoutService(cartRepo, orderRepo, userRepo, processor, receiptMailer)
	orderSvc := service.NewOrderService(orderRepo)
	statsSvc := service.NewStatsService(statsRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	menuHandler := handler.NewMenuHandler(menuSvc)
	cartHandler := handler.NewCartHandler(cartSvc)
	paymentHandler := handler.NewPaymentHandler(checkoutSvc)
	orderHandler := handler.NewOrderHandler(orderSvc)
	statsHandler := handler.NewStatsHandler(statsSvc)

	api := router.Group("/api/v1")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/verify-otp", authHandler.VerifyOTP)
		api.POST("/auth/resend-otp", authHandler.ResendOTP)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/menu", menuHandler.List)
		api.GET("/menu/:id", menuHandler.Get)

		api.GET("/payments/methods", paymentHandler.Methods)
		api.GET("/stats/sales", statsHandler.Sales)

		authed := api.Group("")
		authed.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			authed.GET("/cart", cartHandler.Get)
			authed.POST("/cart", cartHandler.Add)
			authed.PATCH("/cart/:itemID", cartHandler.Update)
			authed.DELETE("/cart/:itemID", cartHandler.Remove)
			authed.DELETE("/cart", cartHandler.Clear)

			authed.POST("/checkout", paymentHandler.Checkout)
			authed.GET("/orders", orderHandler.List)
			authed.GET("/orders/:id", orderHandler.Get)
			authed.GET("/orders/:id/receipt", paymentHandler.Receipt)
		}
	}
}
