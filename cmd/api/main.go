package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	http_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/in/http"
	memory_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/out/memory"
	mysql_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/out/mysql"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/config"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-bank-ledger/pkg/mysql"
	"github.com/JoeShih716/go-bank-ledger/pkg/wal"
)

func main() {
	// .env 不存在也沒關係，改吃系統環境變數
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, relying on system env variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configPath := getEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	branches := domain.NewBranchTable(cfg.Bank.Code, cfg.Bank.Branches)
	numbers := domain.NewNumberGenerator(cfg.Bank.Code)

	var ledger usecase.Ledger
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		var journal *wal.WAL
		if cfg.Storage.WALPath != "" {
			journal, err = wal.NewWAL(cfg.Storage.WALPath)
			if err != nil {
				log.Fatalf("Failed to init WAL: %v", err)
			}
			defer journal.Close()
		}
		memoryLedger, err := memory_adapter.NewMutexLedger(numbers, journal)
		if err != nil {
			log.Fatalf("Failed to init memory ledger: %v", err)
		}
		ledger = memoryLedger
	case config.BackendMySQL:
		dbClient, err := mysql.NewClient(cfg.MySQL)
		if err != nil {
			log.Fatalf("Failed to connect to MySQL: %v", err)
		}
		defer dbClient.Close()

		mysqlLedger, err := mysql_adapter.NewMySQLLedger(dbClient, numbers)
		if err != nil {
			log.Fatalf("Failed to init MySQL ledger: %v", err)
		}
		ledger = mysqlLedger
	default:
		log.Fatalf("Invalid storage backend: %q", cfg.Storage.Backend)
	}

	core := usecase.NewCoreUseCase(branches, ledger)
	handler := http_adapter.NewHandler(core)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(cors.New())
	http_adapter.RegisterRoutes(app, handler)

	port := getEnv("PORT", "3000")
	go func() {
		slog.Info("starting HTTP server", "port", port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	slog.Info("server exited")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
