package main

import (
	"log"
	"time"

	"erp-admin-api-server/config"
	"erp-admin-api-server/internal/api/routes"
	"erp-admin-api-server/internal/auth"
	"erp-admin-api-server/internal/database"
	"erp-admin-api-server/internal/lookup"
	"erp-admin-api-server/internal/s3"
	"erp-admin-api-server/internal/socket"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load .env (optional) and configuration
	_ = godotenv.Load()
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	auth.Configure(cfg.JWT.Secret, cfg.JWT.Expiration)

	// 2. Connect to MongoDB
	db, closeDB, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer closeDB()

	// 3. Seed bootstrap data
	if err := database.SeedSuperAdmin(db); err != nil {
		log.Fatalf("Failed to seed super admin: %v", err)
	}
	if err := database.SeedCatalogos(db); err != nil {
		log.Fatalf("Failed to seed catalogs: %v", err)
	}

	// 4. S3 uploader (optional; logo/photo uploads disabled without it)
	var s3Uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		s3Uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to create S3 uploader: %v", err)
		}
	} else {
		log.Println("S3 bucket not configured; file uploads are disabled")
	}

	// 5. External identity lookup client (optional)
	var identityClient *lookup.Client
	if cfg.IdentityLookup.BaseURL != "" {
		identityClient, err = lookup.NewClient(
			cfg.IdentityLookup.BaseURL,
			lookup.StaticToken(cfg.IdentityLookup.Token),
			time.Duration(cfg.IdentityLookup.TimeoutSeconds)*time.Second,
		)
		if err != nil {
			log.Fatalf("Failed to create identity lookup client: %v", err)
		}
	} else {
		log.Println("Identity lookup service not configured; visitor lookups use the local registry only")
	}

	// 6. WebSocket hub for the live entry/exit feed and kiosk lookups
	wsHub := socket.NewHub()

	// 7. Router and server
	router := routes.SetupRouter(cfg, db, s3Uploader, wsHub, identityClient)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
