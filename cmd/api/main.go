// cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freightflow-api-server/config"
	"freightflow-api-server/internal/api/routes"
	"freightflow-api-server/internal/auth"
	"freightflow-api-server/internal/database"
	"freightflow-api-server/internal/esign"
	"freightflow-api-server/internal/geo"
	"freightflow-api-server/internal/rates"
	"freightflow-api-server/internal/s3"
	"freightflow-api-server/internal/service"
	"freightflow-api-server/internal/socket"
	"freightflow-api-server/internal/store"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	auth.Configure(cfg.JWT.Secret, cfg.JWT.Expiration)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database(cfg.Mongo.DBName)
	st := store.NewMongoStore(db)
	if err := st.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	if err := database.SeedAdmin(ctx, st); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	var uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to initialize S3 uploader: %v", err)
		}
	} else {
		log.Println("S3 bucket not configured, document archiving disabled")
	}

	wsHub := socket.NewHub()
	ratesClient := rates.NewClient(cfg.Rates)
	esignClient := esign.NewClient(cfg.ESign)
	geoClient := geo.NewClient(cfg.Geo, st)

	quoteService := service.NewQuoteService(st, ratesClient)
	bookingService := service.NewBookingService(st, quoteService)
	shipmentService := service.NewShipmentService(st, wsHub)
	documentService := service.NewDocumentService(st, esignClient, uploader, cfg.Documents)

	router := routes.SetupRouter(st, quoteService, bookingService, shipmentService, documentService, geoClient, wsHub)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting API server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
