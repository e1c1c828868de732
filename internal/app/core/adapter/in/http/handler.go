package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
)

const timestampLayout = "2006-01-02 15:04:05"

// Handler 把 REST 請求轉成核心操作。
// 金額在 JSON 裡一律用字串，避免 float 精度問題。
type Handler struct {
	core *usecase.CoreUseCase
}

func NewHandler(core *usecase.CoreUseCase) *Handler {
	return &Handler{core: core}
}

// CreateAccountRequest 開戶請求
type CreateAccountRequest struct {
	BranchCode     string `json:"branch_code"`
	HolderName     string `json:"holder_name"`
	InitialBalance string `json:"initial_balance"`
}

// AmountRequest 存提款請求
type AmountRequest struct {
	Amount string `json:"amount"`
}

type transactionResponse struct {
	RefID        string `json:"ref_id"`
	Timestamp    string `json:"timestamp"`
	Type         string `json:"type"`
	Amount       string `json:"amount"`
	BalanceAfter string `json:"balance_after"`
}

// CreateAccount POST /v1/accounts
func (h *Handler) CreateAccount(c *fiber.Ctx) error {
	var req CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Warn("invalid account body", "error", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	// 原始字串在這一層解析，核心只收 decimal
	initialBalance, err := decimal.NewFromString(req.InitialBalance)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "initial_balance must be a decimal string"})
	}

	account, err := h.core.CreateAccount(c.Context(), req.BranchCode, req.HolderName, initialBalance)
	if err != nil {
		return h.writeDomainError(c, err)
	}

	slog.Info("account created", "account_number", account.AccountNumber, "branch", h.core.BranchName(req.BranchCode))
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"account_number": account.AccountNumber,
		"holder_name":    account.HolderName,
		"branch_name":    h.core.BranchName(req.BranchCode),
		"balance":        account.Balance.StringFixed(2),
		"transactions":   toTransactionResponses(account.Transactions),
	})
}

// Deposit POST /v1/accounts/:number/deposit
func (h *Handler) Deposit(c *fiber.Ctx) error {
	return h.post(c, h.core.Deposit)
}

// Withdraw POST /v1/accounts/:number/withdraw
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	return h.post(c, h.core.Withdraw)
}

// GetBalance GET /v1/accounts/:number/balance
func (h *Handler) GetBalance(c *fiber.Ctx) error {
	number := c.Params("number")
	balance, err := h.core.GetBalance(c.Context(), number)
	if err != nil {
		return h.writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"account_number": number,
		"balance":        balance.StringFixed(2),
	})
}

// GetHistory GET /v1/accounts/:number/transactions
// 空日誌回傳空陣列，和 404 是兩種不同結果
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	number := c.Params("number")
	holderName, transactions, err := h.core.GetHistory(c.Context(), number)
	if err != nil {
		return h.writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"account_number": number,
		"holder_name":    holderName,
		"transactions":   toTransactionResponses(transactions),
	})
}

// ListBranches GET /v1/branches
func (h *Handler) ListBranches(c *fiber.Ctx) error {
	branches := h.core.Branches()
	out := make([]fiber.Map, 0, len(branches))
	for _, branch := range branches {
		out = append(out, fiber.Map{"code": branch.Code, "name": branch.Name})
	}
	return c.JSON(fiber.Map{"branches": out})
}

// post 存提款共用流程：解析金額 → 呼叫核心 → 回傳新餘額
func (h *Handler) post(c *fiber.Ctx, op func(ctx context.Context, number string, amount decimal.Decimal) (decimal.Decimal, error)) error {
	number := c.Params("number")

	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Warn("invalid amount body", "error", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "amount must be a decimal string"})
	}

	newBalance, err := op(c.Context(), number, amount)
	if err != nil {
		return h.writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"account_number": number,
		"balance":        newBalance.StringFixed(2),
	})
}

func toTransactionResponses(transactions []domain.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, transactionResponse{
			RefID:        tx.RefID.String(),
			Timestamp:    tx.Timestamp.Format(timestampLayout),
			Type:         tx.Type.String(),
			Amount:       tx.Amount.StringFixed(2),
			BalanceAfter: tx.BalanceAfter.StringFixed(2),
		})
	}
	return out
}

// writeDomainError 把 domain 錯誤對應到 HTTP 狀態碼。
// 餘額不足回 409 並附上可用餘額。
func (h *Handler) writeDomainError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientFundsError
	switch {
	case errors.As(err, &insufficient):
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"error":             "insufficient funds",
			"available_balance": insufficient.Available.StringFixed(2),
		})
	case errors.Is(err, domain.ErrAccountNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "account not found"})
	case errors.Is(err, domain.ErrUnknownBranch),
		errors.Is(err, domain.ErrInvalidHolderName),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrInvalidAmount):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		slog.Error("ledger operation failed", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
