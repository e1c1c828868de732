package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownBranch 分行代碼不存在
	ErrUnknownBranch = errors.New("unknown branch code")

	// ErrInvalidHolderName 開戶人姓名不可為空白
	ErrInvalidHolderName = errors.New("holder name cannot be empty")

	// ErrNegativeAmount 初始餘額不可為負數
	ErrNegativeAmount = errors.New("initial balance cannot be negative")

	// ErrInvalidAmount 存提款金額必須為正數
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds 餘額不足
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAccountNotFound 找不到帳戶
	ErrAccountNotFound = errors.New("account not found")

	// ErrGenerationExhausted 帳號空間已滿，無法再發號
	ErrGenerationExhausted = errors.New("account number space exhausted")

	// ErrJournalWriteFailed WAL 寫入失敗
	ErrJournalWriteFailed = errors.New("journal write failed")
)

// InsufficientFundsError 餘額不足，附上當下可用餘額供呼叫端顯示。
// errors.Is(err, ErrInsufficientFunds) 可判定類別。
type InsufficientFundsError struct {
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available balance %s", e.Available.StringFixed(2))
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}
