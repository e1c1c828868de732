package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType 交易類型
// 為了節省記憶體，使用 uint8
type TransactionType uint8

const (
	// 開戶時的首筆存款 (初始餘額 > 0 才會產生)
	TransactionTypeInitialDeposit TransactionType = 1
	// 存款
	TransactionTypeDeposit TransactionType = 2
	// 提款
	TransactionTypeWithdrawal TransactionType = 3
)

// String 回傳交易類型的顯示名稱
func (t TransactionType) String() string {
	switch t {
	case TransactionTypeInitialDeposit:
		return "initial deposit"
	case TransactionTypeDeposit:
		return "deposit"
	case TransactionTypeWithdrawal:
		return "withdrawal"
	default:
		return "unknown"
	}
}

// Transaction 單筆交易紀錄，寫入後不可變更、不可刪除
// 失敗或被拒絕的操作不會產生 Transaction
type Transaction struct {
	// RefID: 外部追蹤號，由 Ledger 在入帳當下分配
	RefID uuid.UUID `json:"ref_id"`
	// Timestamp: 入帳時間，由 Ledger 分配 (非呼叫端)
	Timestamp time.Time `json:"timestamp"`
	// Type: 交易類型
	Type TransactionType `json:"type"`
	// Amount: 異動金額 (恆為正數，方向由 Type 決定)
	Amount decimal.Decimal `json:"amount"`
	// BalanceAfter: 交易完成後的帳戶餘額快照，供歷史查詢直接顯示
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

// NewTransaction 建立一筆交易紀錄，時間與追蹤號在此時分配
func NewTransaction(txType TransactionType, amount, balanceAfter decimal.Decimal) Transaction {
	return Transaction{
		RefID:        uuid.New(),
		Timestamp:    time.Now(),
		Type:         txType,
		Amount:       amount,
		BalanceAfter: balanceAfter,
	}
}
