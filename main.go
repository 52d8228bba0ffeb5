package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"avatar-progression/config"
	"avatar-progression/handlers"
	"avatar-progression/middleware"
	"avatar-progression/progression"
	"avatar-progression/services"
	"avatar-progression/store"
	"avatar-progression/utils"
	"avatar-progression/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	generation, err := services.ParseGeneration(cfg.RankingGeneration)
	if err != nil {
		log.Fatal(err)
	}

	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := store.Migrate(db); err != nil {
		log.Fatal(err)
	}

	catalog := progression.NewCatalog(cfg.AssetMints)
	for _, d := range catalog.All() {
		if d.Mint == "" {
			log.Printf("⚠️  No mint configured for %s, it cannot be sold or redeemed", d.Name)
		}
	}

	indexer := services.NewIndexerClient(cfg.IndexerURL, cfg.ServiceToken)
	verifier := services.NewIndexerVerifier(indexer, cfg.Collections)
	gateway := services.NewTokenServiceClient(cfg.TokenServiceURL, cfg.ServiceToken)

	traitService := services.NewTraitService(db, verifier, gateway, cfg.R2.CDNBaseURL)
	badgeService := services.NewBadgeService(db, catalog, verifier, gateway, generation, cfg.R2.CDNBaseURL)
	rankingService := services.NewRankingService(db, generation)
	progressService := services.NewProgressService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var reporter *workers.SupplyReporter
	if cfg.R2.Enabled() {
		r2, err := utils.InitR2(cfg.R2)
		if err != nil {
			log.Fatal("failed to initialize R2 client: ", err)
		}
		reporter = &workers.SupplyReporter{DB: db, Supply: badgeService.Supply, Uploader: r2}
	} else {
		log.Println("⚠️  R2 not configured, supply reports disabled")
	}

	sched, err := workers.StartScheduler(ctx, rankingService, cfg.MigrationSweepInterval, reporter, cfg.SupplyReportInterval)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = sched.Shutdown() }()

	app := fiber.New()

	// 🔐❗ GLOBAL: only Gateway requests allowed
	app.Use(middleware.GatewayAuthMiddleware(cfg.ServiceToken))

	allowedOrigins := strings.Join(cfg.AllowedOrigins, ",")
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID, X-User-ID, X-User-Roles, X-Wallet-Address",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	handlers.SetupProgressionRoutes(app, handlers.ProgressionServices{
		Catalog:  catalog,
		Traits:   traitService,
		Badges:   badgeService,
		Rankings: rankingService,
		History:  progressService,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
	log.Printf("✅ Ranking generation: %s", generation)
	log.Println("✅ GatewayAuthMiddleware enforced globally, all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOrigins)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
