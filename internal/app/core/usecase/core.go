package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
)

// CoreUseCase 是核心業務邏輯層：統一做輸入驗證，再轉交帳本後端。
// 驗證放在這一層，memory 與 mysql adapter 才不用各寫一份。
type CoreUseCase struct {
	branches *domain.BranchTable
	ledger   Ledger
}

func NewCoreUseCase(branches *domain.BranchTable, ledger Ledger) *CoreUseCase {
	return &CoreUseCase{
		branches: branches,
		ledger:   ledger,
	}
}

// CreateAccount 開戶
//
// 驗證順序:
//
//	分行代碼必須存在 → ErrUnknownBranch (驗證失敗不會消耗帳號)
//	姓名去除前後空白後不可為空 → ErrInvalidHolderName
//	初始餘額不可為負 → ErrNegativeAmount
func (c *CoreUseCase) CreateAccount(ctx context.Context, branchCode, holderName string, initialBalance decimal.Decimal) (*domain.Account, error) {
	if !c.branches.Has(branchCode) {
		return nil, domain.ErrUnknownBranch
	}
	holderName = strings.TrimSpace(holderName)
	if holderName == "" {
		return nil, domain.ErrInvalidHolderName
	}
	if initialBalance.Sign() < 0 {
		return nil, domain.ErrNegativeAmount
	}
	return c.ledger.CreateAccount(ctx, branchCode, holderName, initialBalance)
}

// Deposit 存款；金額必須為正數
func (c *CoreUseCase) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.Sign() <= 0 {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return c.ledger.Deposit(ctx, accountNumber, amount)
}

// Withdraw 提款；金額必須為正數，餘額不足回傳 InsufficientFundsError
func (c *CoreUseCase) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.Sign() <= 0 {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return c.ledger.Withdraw(ctx, accountNumber, amount)
}

// GetBalance 查詢餘額
func (c *CoreUseCase) GetBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	return c.ledger.GetBalance(ctx, accountNumber)
}

// GetHistory 查詢交易歷史
func (c *CoreUseCase) GetHistory(ctx context.Context, accountNumber string) (string, []domain.Transaction, error) {
	return c.ledger.GetHistory(ctx, accountNumber)
}

// BranchName 依代碼查分行名稱；查無資料回傳 "Unknown Branch" (預設值，非錯誤)
func (c *CoreUseCase) BranchName(code string) string {
	return c.branches.Name(code)
}

// Branches 回傳所有分行 (依代碼排序)
func (c *CoreUseCase) Branches() []domain.Branch {
	return c.branches.List()
}
