package main

import (
	"context"
	"log"
	"os"

	cli_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/in/cli"
	memory_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/out/memory"
	mysql_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/out/mysql"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/config"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-bank-ledger/pkg/mysql"
	"github.com/JoeShih716/go-bank-ledger/pkg/wal"
)

func main() {
	// 1. 載入設定
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. 參考資料與發號器
	branches := domain.NewBranchTable(cfg.Bank.Code, cfg.Bank.Branches)
	numbers := domain.NewNumberGenerator(cfg.Bank.Code)

	// 3. 依設定選擇帳本後端
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
		log.Println("Connected to MySQL successfully")

		mysqlLedger, err := mysql_adapter.NewMySQLLedger(dbClient, numbers)
		if err != nil {
			log.Fatalf("Failed to init MySQL ledger: %v", err)
		}
		ledger = mysqlLedger
	default:
		log.Fatalf("Invalid storage backend: %q", cfg.Storage.Backend)
	}

	// 4. 核心與互動選單
	core := usecase.NewCoreUseCase(branches, ledger)
	menu := cli_adapter.NewMenu(core, os.Stdin, os.Stdout)

	if err := menu.Run(context.Background()); err != nil {
		log.Fatalf("Menu loop failed: %v", err)
	}
}
