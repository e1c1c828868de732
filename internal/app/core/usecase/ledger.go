package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
)

// Ledger 是帳本後端的介面，由 memory / mysql adapter 實作。
// 輸入在 CoreUseCase 驗證完才會進到這裡；
// adapter 只需維護儲存層的不變量 (帳戶存在、餘額足夠、日誌一致)。
type Ledger interface {
	// CreateAccount 開戶並配發帳號；初始餘額 > 0 時產生 initial deposit 交易
	CreateAccount(ctx context.Context, branchCode, holderName string, initialBalance decimal.Decimal) (*domain.Account, error)
	// Deposit 存款，回傳新餘額
	Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (decimal.Decimal, error)
	// Withdraw 提款，回傳新餘額；餘額檢查與扣款針對同一份快照
	Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (decimal.Decimal, error)
	// GetBalance 查詢餘額 (純讀取)
	GetBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error)
	// GetHistory 查詢開戶人與交易日誌 (依時間順序；空日誌是合法結果)
	GetHistory(ctx context.Context, accountNumber string) (string, []domain.Transaction, error)
}
