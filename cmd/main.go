package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/skinory/skinory-api/internal/command"
	"github.com/skinory/skinory-api/internal/config"
	"github.com/skinory/skinory-api/internal/events"
	"github.com/skinory/skinory-api/internal/handler"
	"github.com/skinory/skinory-api/internal/middleware"
	"github.com/skinory/skinory-api/internal/models"
	"github.com/skinory/skinory-api/internal/query"
	skinredis "github.com/skinory/skinory-api/internal/redis"
	"github.com/skinory/skinory-api/internal/repository"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Database connection (write store)
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	// Redis connection (read model store + event streaming)
	redis, err := skinredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	// --- CQRS wiring ---
	publisher := events.NewPublisher(redis.Client)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	routineRepo := repository.NewRoutineRepository(db)
	routineReadRepo := repository.NewRoutineReadRepository(db, redis.Client)

	routineCmd := command.NewRoutineCommandService(userRepo, productRepo, routineRepo, routineReadRepo, publisher)
	userCmd := command.NewUserCommandService(userRepo)

	authQry := query.NewAuthQueryService(userRepo)
	routineQry := query.NewRoutineQueryService(routineReadRepo, userRepo, productRepo)
	userQry := query.NewUserQueryService(userRepo)

	authHandler := handler.NewAuthHandler(userCmd, authQry)
	userHandler := handler.NewUserHandler(userCmd, userQry)
	productHandler := handler.NewProductHandler(routineQry)
	routineHandler := handler.NewRoutineHandler(routineCmd, routineQry)

	// Setup router
	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	users := router.Group("/users", middleware.AuthMiddleware())
	{
		users.GET("/:user_id", userHandler.GetProfile)
		users.PATCH("/:user_id/password", userHandler.UpdatePassword)
	}

	router.GET("/products/best/:user_id", middleware.AuthMiddleware(), productHandler.BestProducts)

	routine := router.Group("/routine", middleware.AuthMiddleware())
	{
		routine.GET("/:user_id/day", routineHandler.ListRoutines(models.PeriodDay))
		routine.GET("/:user_id/night", routineHandler.ListRoutines(models.PeriodNight))
		routine.GET("/:user_id/:category", routineHandler.RecommendedProducts)
		routine.POST("/:user_id/:category/day", routineHandler.AddRoutine(models.PeriodDay))
		routine.POST("/:user_id/:category/night", routineHandler.AddRoutine(models.PeriodNight))
		routine.PATCH("/:user_id/:product_id", routineHandler.UpdateApplied)
		routine.DELETE("/:user_id/day", routineHandler.DeleteRoutines(models.PeriodDay))
		routine.DELETE("/:user_id/night", routineHandler.DeleteRoutines(models.PeriodNight))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
			Group:    "skinory-audit-group",
			Consumer: "skinory-audit-1",
			Stream:   events.RoutineDeletedStream,
			Handler:  routineCmd.HandleDeletionEvent,
		})
		if err := subscriber.Start(ctx); err != nil {
			log.Printf("Subscriber stopped: %v", err)
		}
	}()

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	log.Printf("SkinOry service starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
