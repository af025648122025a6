package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brisaweb/marketing-site-backend/api"
	"github.com/brisaweb/marketing-site-backend/config"
	"github.com/brisaweb/marketing-site-backend/database"
	"github.com/brisaweb/marketing-site-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	conf := config.New()

	connStr := config.GetString(conf, "DATABASE_URL", "")
	if connStr == "" {
		connStr = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(conf, "SUPABASE_DB_HOST", ""),
			config.GetString(conf, "SUPABASE_DB_USER", ""),
			config.GetString(conf, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(conf, "SUPABASE_DB_NAME", ""),
			config.GetString(conf, "SUPABASE_DB_PORT", "5432"),
		)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// gen_random_uuid() is core from Postgres 13; pgcrypto covers older targets.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"pgcrypto\"").Error; err != nil {
		fmt.Printf("Error enabling pgcrypto extension: %v\n", err)
		os.Exit(1)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		fmt.Printf("Error testing database connection: %v\n", err)
		os.Exit(1)
	}

	if config.GetBool(conf, "AUTO_MIGRATE", true) {
		if err := database.AutoMigrate(db); err != nil {
			fmt.Printf("Error migrating database schema: %v\n", err)
			os.Exit(1)
		}
	}

	currentDB := database.New(db)

	gateway, err := services.NewAIGateway(conf)
	if err != nil {
		fmt.Printf("Error initializing AI gateway: %v\n", err)
		os.Exit(1)
	}

	store, err := services.NewS3ObjectStore(context.Background(), conf)
	if err != nil {
		fmt.Printf("Error initializing object store: %v\n", err)
		os.Exit(1)
	}

	tracker := services.NewJobTracker(currentDB.BlogJobRepo())
	audit := services.NewAuditRecorder(currentDB.AuditLogRepo())
	publisher := services.NewScheduledPublisher(currentDB.BlogPostRepo(), tracker, audit)

	deps := api.Deps{
		TextGenerator:  services.NewTextGenerator(currentDB.BlogPostRepo(), tracker, audit, gateway),
		ImageGenerator: services.NewImageGenerator(currentDB.BlogPostRepo(), tracker, audit, gateway, store),
		Publisher:      publisher,
		PostAdmin:      services.NewPostAdmin(currentDB.BlogPostRepo(), audit),
		Audit:          audit,
		Language:       services.NewLanguageDetector(),
	}

	// One-shot mode for running the publisher from a cron job instead of
	// the HTTP trigger.
	if config.GetBool(conf, "RUN_PUBLISHER", false) {
		summary, err := publisher.Run(context.Background())
		if err != nil {
			fmt.Printf("Publisher run failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Publisher run finished: %d published, %d failed\n", len(summary.Published), len(summary.Failed))
		return
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, deps)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
