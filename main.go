package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"

	"saalisloki/internal/handlers"
	"saalisloki/internal/middleware"
	"saalisloki/internal/repositories"
	"saalisloki/internal/services"
	"saalisloki/internal/storage"
	"saalisloki/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":3001")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TOKEN_TTL_SECONDS", 2629743)
	viper.SetDefault("STORAGE_DRIVER", "sqlite")
	viper.SetDefault("SQLITE_PATH", "saalisloki.db")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "saalisloki")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	tokenTTL := time.Duration(viper.GetInt64("TOKEN_TTL_SECONDS")) * time.Second

	storageCfg := storage.Config{
		Driver:        viper.GetString("STORAGE_DRIVER"),
		SQLitePath:    viper.GetString("SQLITE_PATH"),
		DatabaseURL:   viper.GetString("DATABASE_URL"),
		MongoURI:      viper.GetString("MONGODB_URI"),
		MongoDatabase: viper.GetString("MONGO_DATABASE"),
	}

	// --- Initialize Repositories ---
	var entryRepo repositories.EntryRepository
	var userRepo repositories.UserRepository
	if storageCfg.Driver == "mongo" {
		mongoDB, closeMongo, err := storage.OpenMongo(storageCfg)
		if err != nil {
			log.Fatalf("Failed to initialize MongoDB storage: %v", err)
		}
		defer closeMongo()
		entryRepo = repositories.NewMongoEntryRepository(mongoDB)
		userRepo = repositories.NewMongoUserRepository(mongoDB)
	} else {
		db, err := storage.OpenGORM(storageCfg)
		if err != nil {
			log.Fatalf("Failed to initialize %s storage: %v", storageCfg.Driver, err)
		}
		entryRepo = repositories.NewGORMEntryRepository(db)
		userRepo = repositories.NewGORMUserRepository(db)
	}
	log.Printf("Storage initialized (driver: %s)", storageCfg.Driver)

	// --- Initialize RabbitMQ Client (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, entry events will not be published")
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, jwtSecret, tokenTTL)
	entryService := services.NewEntryService(entryRepo, mqClient)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	entryHandler := handlers.NewEntryHandler(entryService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	entryHandler.RegisterRoutes(api, middleware.AuthRequired(authService, userRepo))

	// Anything that did not match a route above.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown endpoint",
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for entry events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received entry event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeEntryEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
