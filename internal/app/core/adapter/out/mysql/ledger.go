package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-bank-ledger/pkg/mysql"
)

// sqlAccount 對應資料庫的 accounts 表
type sqlAccount struct {
	AccountNumber string          `gorm:"primaryKey;size:16"`
	HolderName    string          `gorm:"size:255"`
	Balance       decimal.Decimal `gorm:"type:decimal(20,2)"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

func (*sqlAccount) TableName() string {
	return "accounts"
}

// sqlTransaction 對應資料庫的 transactions 表
// 主鍵遞增即插入順序，GetHistory 依此排序還原時間順序
type sqlTransaction struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	RefID         []byte          `gorm:"column:ref_id;type:binary(16);uniqueIndex"`
	AccountNumber string          `gorm:"size:16;index"`
	Type          uint8
	Amount        decimal.Decimal `gorm:"type:decimal(20,2)"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(20,2)"`
	// 入帳時間由 Ledger 指定 (domain.Transaction.Timestamp)，非零值 gorm 不會覆寫
	CreatedAt time.Time
}

func (*sqlTransaction) TableName() string {
	return "transactions"
}

// MySQLLedger 是以 MySQL 為後端的帳本實作 (選配的持久化層)。
// 帳號產生器仍在 process 內保證不重複；資料表的唯一索引是第二道防線。
type MySQLLedger struct {
	client  *mysql.Client
	numbers *domain.NumberGenerator
}

// NewMySQLLedger 建立 MySQL 帳本並執行 schema migration，
// 同時把既有帳號補登進產生器，避免與歷史帳號撞號。
func NewMySQLLedger(client *mysql.Client, numbers *domain.NumberGenerator) (*MySQLLedger, error) {
	if err := client.DB().AutoMigrate(&sqlAccount{}, &sqlTransaction{}); err != nil {
		return nil, err
	}

	var existing []string
	if err := client.DB().Model(&sqlAccount{}).Pluck("account_number", &existing).Error; err != nil {
		return nil, err
	}
	for _, number := range existing {
		numbers.MarkIssued(number)
	}

	return &MySQLLedger{
		client:  client,
		numbers: numbers,
	}, nil
}

// CreateAccount 開戶：寫入帳戶列，初始餘額 > 0 時再寫一筆 initial deposit 交易
func (l *MySQLLedger) CreateAccount(ctx context.Context, branchCode, holderName string, initialBalance decimal.Decimal) (*domain.Account, error) {
	number, err := l.numbers.Generate(branchCode)
	if err != nil {
		return nil, err
	}

	account := domain.NewAccount(number, holderName, initialBalance)

	err = l.client.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := sqlAccount{
			AccountNumber: account.AccountNumber,
			HolderName:    account.HolderName,
			Balance:       account.Balance,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		for i := range account.Transactions {
			if err := tx.Create(toSQLTransaction(account.AccountNumber, &account.Transactions[i])).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Deposit 存款
func (l *MySQLLedger) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (decimal.Decimal, error) {
	return l.post(ctx, accountNumber, domain.TransactionTypeDeposit, amount)
}

// Withdraw 提款
func (l *MySQLLedger) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (decimal.Decimal, error) {
	return l.post(ctx, accountNumber, domain.TransactionTypeWithdrawal, amount)
}

// post 在單一 DB 交易內完成餘額異動與交易入帳。
// SELECT ... FOR UPDATE 悲觀鎖住帳戶列，餘額檢查與扣款看到同一個版本。
func (l *MySQLLedger) post(ctx context.Context, accountNumber string, txType domain.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	var newBalance decimal.Decimal

	err := l.client.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row sqlAccount
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("account_number = ?", accountNumber).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAccountNotFound
		}
		if err != nil {
			return err
		}

		switch txType {
		case domain.TransactionTypeDeposit:
			newBalance = row.Balance.Add(amount)
		case domain.TransactionTypeWithdrawal:
			if row.Balance.LessThan(amount) {
				return &domain.InsufficientFundsError{Available: row.Balance}
			}
			newBalance = row.Balance.Sub(amount)
		}

		record := domain.NewTransaction(txType, amount, newBalance)

		if err := tx.Model(&sqlAccount{}).
			Where("account_number = ?", accountNumber).
			Update("balance", newBalance).Error; err != nil {
			return err
		}
		return tx.Create(toSQLTransaction(accountNumber, &record)).Error
	})
	if err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

// GetBalance 查詢餘額
func (l *MySQLLedger) GetBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	var row sqlAccount
	err := l.client.DB().WithContext(ctx).
		Where("account_number = ?", accountNumber).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	return row.Balance, nil
}

// GetHistory 查詢開戶人與交易日誌 (依插入順序)
func (l *MySQLLedger) GetHistory(ctx context.Context, accountNumber string) (string, []domain.Transaction, error) {
	db := l.client.DB().WithContext(ctx)

	var row sqlAccount
	err := db.Where("account_number = ?", accountNumber).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return "", nil, err
	}

	var rows []sqlTransaction
	if err := db.Where("account_number = ?", accountNumber).
		Order("id asc").
		Find(&rows).Error; err != nil {
		return "", nil, err
	}

	history := make([]domain.Transaction, 0, len(rows))
	for i := range rows {
		record, err := toDomainTransaction(&rows[i])
		if err != nil {
			return "", nil, err
		}
		history = append(history, record)
	}
	return row.HolderName, history, nil
}

func toSQLTransaction(accountNumber string, record *domain.Transaction) *sqlTransaction {
	refID := record.RefID
	return &sqlTransaction{
		RefID:         refID[:],
		AccountNumber: accountNumber,
		Type:          uint8(record.Type),
		Amount:        record.Amount,
		BalanceAfter:  record.BalanceAfter,
		CreatedAt:     record.Timestamp,
	}
}

func toDomainTransaction(row *sqlTransaction) (domain.Transaction, error) {
	refID, err := uuid.FromBytes(row.RefID)
	if err != nil {
		return domain.Transaction{}, err
	}
	return domain.Transaction{
		RefID:        refID,
		Timestamp:    row.CreatedAt,
		Type:         domain.TransactionType(row.Type),
		Amount:       row.Amount,
		BalanceAfter: row.BalanceAfter,
	}, nil
}

var _ usecase.Ledger = (*MySQLLedger)(nil)
