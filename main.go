package main

import (
	"log"

	"github.com/eventflow/eventflow/config"
	"github.com/eventflow/eventflow/internal/consumer"
	"github.com/eventflow/eventflow/internal/handler"
	"github.com/eventflow/eventflow/internal/middleware"
	"github.com/eventflow/eventflow/internal/repository"
	"github.com/eventflow/eventflow/internal/service"
	"github.com/eventflow/eventflow/internal/ticketcode"
	"github.com/eventflow/eventflow/pkg/cache"
	"github.com/eventflow/eventflow/pkg/database"
	"github.com/eventflow/eventflow/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())
	redisClient := cache.NewRedisClient(cfg.RedisURL)
	eventCache := cache.NewEventCache(redisClient)

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// Lifecycle messages from sibling instances drop our cache entries.
	busConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to start RabbitMQ consumer: %v", err)
	}
	defer busConsumer.Close()
	msgs, err := busConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to consume: %v", err)
	}
	consumer.NewCacheConsumer(eventCache).Start(msgs)

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	ticketTypeRepo := repository.NewTicketTypeRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	attendeeRepo := repository.NewAttendeeRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	refundRepo := repository.NewRefundRepository(db)
	organizerRepo := repository.NewOrganizerRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)

	// Services
	eventSvc := service.NewEventService(eventRepo, categoryRepo, ticketTypeRepo, organizerRepo, publisher, eventCache)
	purchaseSvc := service.NewPurchaseService(eventRepo, ticketTypeRepo, ticketRepo, attendeeRepo, transactionRepo, ticketcode.NewGenerator(), publisher)
	attendeeSvc := service.NewAttendeeService(attendeeRepo, ticketRepo, organizerRepo)
	reviewSvc := service.NewReviewService(reviewRepo, attendeeRepo, eventRepo)
	refundSvc := service.NewRefundService(refundRepo, ticketRepo, ticketTypeRepo, transactionRepo, eventRepo, publisher)
	announcementSvc := service.NewAnnouncementService(announcementRepo, organizerRepo, publisher)
	categorySvc := service.NewCategoryService(categoryRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "eventflow"})
	})
	if cfg.EnableMetrics {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	eventHandler := handler.NewEventHandler(eventSvc)
	purchaseHandler := handler.NewPurchaseHandler(purchaseSvc, attendeeSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc, refundSvc, announcementSvc)
	adminHandler := handler.NewAdminHandler(eventSvc, refundSvc, categorySvc)

	public := e.Group("/api/v1/public")
	eventHandler.RegisterPublicRoutes(public.Group("/events"))
	reviewHandler.RegisterPublicRoutes(public)

	auth := middleware.Auth([]byte(cfg.JWTSecret))

	api := e.Group("/api/v1", auth)
	eventHandler.RegisterOrganizerRoutes(api.Group("/events"))
	purchaseHandler.RegisterRoutes(api)
	reviewHandler.RegisterRoutes(api)

	admin := e.Group("/api/v1/admin", auth, middleware.RequireAdmin)
	adminHandler.RegisterRoutes(admin)

	log.Printf("EventFlow starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
