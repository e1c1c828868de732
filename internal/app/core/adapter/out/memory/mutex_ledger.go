package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-bank-ledger/pkg/wal"
)

// WAL 事件種類
const (
	eventAccountCreated = "account_created"
	eventTransaction    = "transaction"
)

// walEvent 一筆 WAL 紀錄：開戶或入帳。
// 入帳事件帶完整 Transaction (含 BalanceAfter)，重放時不重算、直接套用。
type walEvent struct {
	Kind          string              `json:"kind"`
	AccountNumber string              `json:"account_number"`
	HolderName    string              `json:"holder_name,omitempty"`
	Tx            *domain.Transaction `json:"tx,omitempty"`
}

// MutexLedger 是以 RWMutex 序列化的記憶體帳本。
//
// 結構:
//
//	accounts: 帳號 → 帳戶 Map (獨占持有，對外只給拷貝)
//	numbers: 帳號產生器 (process 內不重複發號)
//	journal: Write-Ahead Log，nil 表示純記憶體模式
//
// 寫入持 write lock 直到餘額與日誌都更新完，
// 讀取持 read lock，因此不會看到餘額與日誌不同步的狀態。
type MutexLedger struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	numbers  *domain.NumberGenerator
	journal  *wal.WAL
}

// NewMutexLedger 建立記憶體帳本
//
// 參數:
//
//	numbers: 帳號產生器
//	journal: WAL 實例，可為 nil (不落地)
//
// 回傳:
//
//	*MutexLedger: 帳本實例
//	error: WAL 重放失敗
func NewMutexLedger(numbers *domain.NumberGenerator, journal *wal.WAL) (*MutexLedger, error) {
	ledger := &MutexLedger{
		accounts: make(map[string]*domain.Account),
		numbers:  numbers,
		journal:  journal,
	}
	if journal != nil {
		if err := ledger.recoverFromWAL(); err != nil {
			return nil, err
		}
	}
	return ledger, nil
}

// recoverFromWAL 重放 WAL 重建帳本狀態。
// 只在 NewMutexLedger 內呼叫，單執行緒，不需要鎖。
func (m *MutexLedger) recoverFromWAL() error {
	return m.journal.ReadAll(func(jsonRaw []byte) error {
		var event walEvent
		if err := json.Unmarshal(jsonRaw, &event); err != nil {
			return err
		}
		return m.applyRecoveredEvent(&event)
	})
}

// applyRecoveredEvent 重放單筆事件 (不寫 WAL)。
// 開戶事件同時向產生器補登帳號，避免重啟後重複發號。
func (m *MutexLedger) applyRecoveredEvent(event *walEvent) error {
	switch event.Kind {
	case eventAccountCreated:
		m.numbers.MarkIssued(event.AccountNumber)
		m.accounts[event.AccountNumber] = &domain.Account{
			AccountNumber: event.AccountNumber,
			HolderName:    event.HolderName,
			Balance:       decimal.Zero,
		}
	case eventTransaction:
		account, ok := m.accounts[event.AccountNumber]
		if !ok {
			return domain.ErrAccountNotFound
		}
		account.Apply(*event.Tx)
	}
	return nil
}

// CreateAccount 開戶
//
// 參數:
//
//	ctx: 上下文
//	branchCode: 分行代碼 (上層已驗證)
//	holderName: 開戶人姓名 (上層已驗證非空白)
//	initialBalance: 初始餘額 (上層已驗證非負)
//
// 回傳:
//
//	*domain.Account: 新帳戶的拷貝 (含配發的帳號)
//	error: 發號失敗或 WAL 寫入失敗
func (m *MutexLedger) CreateAccount(ctx context.Context, branchCode, holderName string, initialBalance decimal.Decimal) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	number, err := m.numbers.Generate(branchCode)
	if err != nil {
		return nil, err
	}

	account := domain.NewAccount(number, holderName, initialBalance)

	// 先寫 WAL 再進 Map：開戶事件一筆，初始存款交易另一筆
	if err := m.journalWrite(&walEvent{
		Kind:          eventAccountCreated,
		AccountNumber: number,
		HolderName:    holderName,
	}); err != nil {
		return nil, err
	}
	for i := range account.Transactions {
		if err := m.journalWrite(&walEvent{
			Kind:          eventTransaction,
			AccountNumber: number,
			Tx:            &account.Transactions[i],
		}); err != nil {
			return nil, err
		}
	}

	m.accounts[number] = account
	return account.Clone(), nil
}

// Deposit 存款
func (m *MutexLedger) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[accountNumber]
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}

	tx := domain.NewTransaction(domain.TransactionTypeDeposit, amount, account.Balance.Add(amount))
	if err := m.journalWrite(&walEvent{
		Kind:          eventTransaction,
		AccountNumber: accountNumber,
		Tx:            &tx,
	}); err != nil {
		return decimal.Zero, err
	}

	account.Apply(tx)
	return account.Balance, nil
}

// Withdraw 提款。餘額檢查與扣款在同一個臨界區內針對同一份餘額，
// 檢查不過就不會有任何狀態變動 (不會部分提款)。
func (m *MutexLedger) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[accountNumber]
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	if account.Balance.LessThan(amount) {
		return decimal.Zero, &domain.InsufficientFundsError{Available: account.Balance}
	}

	tx := domain.NewTransaction(domain.TransactionTypeWithdrawal, amount, account.Balance.Sub(amount))
	if err := m.journalWrite(&walEvent{
		Kind:          eventTransaction,
		AccountNumber: accountNumber,
		Tx:            &tx,
	}); err != nil {
		return decimal.Zero, err
	}

	account.Apply(tx)
	return account.Balance, nil
}

// GetBalance 查詢餘額 (純讀取)
func (m *MutexLedger) GetBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.accounts[accountNumber]
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	return account.Balance, nil
}

// GetHistory 查詢開戶人與交易日誌，日誌回傳拷貝。
// 沒有任何交易的帳戶回傳空切片，與 ErrAccountNotFound 是兩回事。
func (m *MutexLedger) GetHistory(ctx context.Context, accountNumber string) (string, []domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.accounts[accountNumber]
	if !ok {
		return "", nil, domain.ErrAccountNotFound
	}
	history := make([]domain.Transaction, len(account.Transactions))
	copy(history, account.Transactions)
	return account.HolderName, history, nil
}

// journalWrite 寫入 WAL；journal 為 nil 時直接成功
func (m *MutexLedger) journalWrite(event *walEvent) error {
	if m.journal == nil {
		return nil
	}
	if err := m.journal.Write(event); err != nil {
		return domain.ErrJournalWriteFailed
	}
	return nil
}

var _ usecase.Ledger = (*MutexLedger)(nil)
