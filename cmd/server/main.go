package main

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/zerox-toml/superworld-proof-of-place/internal/config"
	"github.com/zerox-toml/superworld-proof-of-place/internal/exif"
	"github.com/zerox-toml/superworld-proof-of-place/internal/handler"
	"github.com/zerox-toml/superworld-proof-of-place/internal/middleware"
	"github.com/zerox-toml/superworld-proof-of-place/internal/repository"
	"github.com/zerox-toml/superworld-proof-of-place/internal/router"
	"github.com/zerox-toml/superworld-proof-of-place/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "proof-of-place")

	tables, err := config.LoadTables(cfg.LookupTablesPath)
	if err != nil {
		log.Fatalf("failed to load lookup tables: %v", err)
	}

	// Process-wide indices: created empty, torn down with the process.
	dedup := repository.NewDedupRepo()
	history := repository.NewHistoryRepo()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	engine := service.NewEngine(
		service.NewTextService(tables),
		service.NewImageService(exif.AbsentExtractor{}, dedup),
		service.NewTimeService(tables),
		service.NewSpamService(dedup, history),
	)

	app := fiber.New(fiber.Config{
		AppName:      "Proof-of-Place API",
		ServerHeader: "proof-of-place",
	})

	handler.InitMetrics()

	h := &router.Handlers{
		Validate: handler.NewValidateHandler(engine),
		Stats:    handler.NewStatsHandler(engine, dedup, history, cache),
		Health:   handler.NewHealthHandler(cache.Client()),
	}
	router.Setup(app, h, cfg.CORSOrigins)

	log.Printf("proof-of-place backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	log.Fatal(app.Listen(":" + cfg.Port))
}
