package domain

import "github.com/shopspring/decimal"

// Account 帳戶聚合：餘額與交易日誌必須一起變動，
// 不變量: Balance = 初始餘額 + Σ(存款) - Σ(提款)，
// 初始餘額 > 0 時含一筆 initial deposit 交易。
type Account struct {
	// AccountNumber: 全域唯一帳號，格式 <bankCode><branchCode><6位數流水>
	AccountNumber string
	// HolderName: 開戶人姓名，建立後不可變更
	HolderName string
	// Balance: 目前餘額，恆為非負
	Balance decimal.Decimal
	// Transactions: 交易日誌，只能追加，插入順序即時間順序
	Transactions []Transaction
}

// NewAccount 建立帳戶。初始餘額 > 0 時補上一筆 initial deposit 交易；
// 初始餘額為 0 時不產生任何交易 (維持「零餘額帳戶無交易」的行為)。
func NewAccount(accountNumber, holderName string, initialBalance decimal.Decimal) *Account {
	a := &Account{
		AccountNumber: accountNumber,
		HolderName:    holderName,
		Balance:       decimal.Zero,
		Transactions:  nil,
	}
	if initialBalance.Sign() > 0 {
		a.Apply(NewTransaction(TransactionTypeInitialDeposit, initialBalance, initialBalance))
	}
	return a
}

// Apply 提交一筆交易：餘額更新與日誌追加在同一步完成，
// 外部看不到「餘額已變但日誌未追加」的中間狀態。
// 也用於 WAL 重放，重放時沿用紀錄中的 BalanceAfter。
func (a *Account) Apply(tx Transaction) {
	a.Balance = tx.BalanceAfter
	a.Transactions = append(a.Transactions, tx)
}

// Clone 回傳帳戶的深拷貝 (含交易日誌)，避免呼叫端越權修改內部狀態
func (a *Account) Clone() *Account {
	cp := *a
	cp.Transactions = make([]Transaction, len(a.Transactions))
	copy(cp.Transactions, a.Transactions)
	return &cp
}
