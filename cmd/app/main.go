package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/IshCodeBellz/NVRSTL-sub000/cmd"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/adapters/out/postgres/eventrepo"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/adapters/out/postgres/orderrepo"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/adapters/out/postgres/shipmentrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	config := getConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := openDatabase(config)
	migrate(db)

	root := cmd.NewCompositionRoot(config, db, logger)

	jobManager := root.CreateJobManager(config)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, config.HTTPPort)
}

func getConfig() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}

	return cmd.Config{
		HTTPPort:             envOr("HTTP_PORT", "8080"),
		DBHost:               os.Getenv("DB_HOST"),
		DBPort:               os.Getenv("DB_PORT"),
		DBUser:               os.Getenv("DB_USER"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               os.Getenv("DB_NAME"),
		DBSslMode:            envOr("DB_SSLMODE", "disable"),
		CarrierBaseURL:       os.Getenv("CARRIER_BASE_URL"),
		CatalogBaseURL:       os.Getenv("CATALOG_BASE_URL"),
		MailServiceURL:       os.Getenv("MAIL_SERVICE_URL"),
		SMSGatewayURL:        os.Getenv("SMS_GATEWAY_URL"),
		SMSEnabled:           os.Getenv("SMS_ENABLED") == "true",
		AdminEmail:           os.Getenv("ADMIN_EMAIL"),
		TrackingPollSchedule: envOr("TRACKING_POLL_SCHEDULE", "0 */5 * * * *"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func openDatabase(config cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword,
		config.DBName, config.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&eventrepo.EventDTO{},
		&shipmentrepo.ShipmentDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())

	root.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
