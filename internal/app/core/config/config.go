package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/JoeShih716/go-bank-ledger/pkg/mysql"
)

// 儲存後端種類
const (
	BackendMemory = "memory"
	BackendMySQL  = "mysql"
)

// BankConfig 銀行參考資料：銀行代碼與分行對照表。
// 啟動時載入一次，之後不再變動。
type BankConfig struct {
	Code     string            `yaml:"code"`
	Branches map[string]string `yaml:"branches"`
}

// StorageConfig 儲存後端設定
type StorageConfig struct {
	// memory | mysql
	Backend string `yaml:"backend"`
	// WALPath 留空表示記憶體後端不落地
	WALPath string `yaml:"wal_path"`
}

// Config 整個應用的設定
type Config struct {
	Bank    BankConfig    `yaml:"bank"`
	Storage StorageConfig `yaml:"storage"`
	MySQL   mysql.Config  `yaml:"mysql"`
}

// Load 讀取 yaml 設定檔並補上預設值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// 補全預設配置 (yaml 沒寫的話)
	if cfg.Bank.Code == "" {
		cfg.Bank.Code = "500"
	}
	if len(cfg.Bank.Branches) == 0 {
		cfg.Bank.Branches = map[string]string{
			"001": "Jaffna Branch",
			"002": "Colombo Branch",
			"003": "Kandy Branch",
			"004": "Galle Branch",
		}
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendMemory
	}
	if cfg.MySQL.Port == 0 {
		cfg.MySQL.Port = 3306
	}
	if cfg.MySQL.MaxOpenConns == 0 {
		cfg.MySQL.MaxOpenConns = 100
	}
	if cfg.MySQL.MaxIdleConns == 0 {
		cfg.MySQL.MaxIdleConns = 10
	}
	if cfg.MySQL.ConnMaxLifetime == 0 {
		cfg.MySQL.ConnMaxLifetime = 30 * time.Minute
	}
	return &cfg, nil
}
