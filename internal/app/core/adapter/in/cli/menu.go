// Package cli 是互動式選單的 presentation 層：
// 負責讀原始文字、解析驗證、把 domain 錯誤翻成給人看的訊息。
// 核心帳本只會收到解析完成的參數，不會碰到原始輸入。
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
)

// 時間只在顯示時格式化，內部一律存 time.Time
const timestampLayout = "2006-01-02 15:04:05"

// Menu 互動式選單
type Menu struct {
	core *usecase.CoreUseCase
	in   *bufio.Scanner
	out  io.Writer
}

// NewMenu 建立選單；in/out 可注入，方便測試
func NewMenu(core *usecase.CoreUseCase, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		core: core,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Run 主迴圈：顯示選單、讀取選項、分發處理，選 6 或輸入結束時返回
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printMenu()
		choice, ok := m.prompt("Enter your choice (1-6): ")
		if !ok {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			m.createAccount(ctx)
		case "2":
			m.deposit(ctx)
		case "3":
			m.withdraw(ctx)
		case "4":
			m.checkBalance(ctx)
		case "5":
			m.history(ctx)
		case "6":
			fmt.Fprintln(m.out, "Exiting the banking system. Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please enter a number between 1 and 6.")
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "===== Simple Banking System =====")
	fmt.Fprintln(m.out, "1. Create Account")
	fmt.Fprintln(m.out, "2. Deposit Money")
	fmt.Fprintln(m.out, "3. Withdraw Money")
	fmt.Fprintln(m.out, "4. Check Balance")
	fmt.Fprintln(m.out, "5. Transaction History")
	fmt.Fprintln(m.out, "6. Exit")
	fmt.Fprintln(m.out, "================================")
}

// prompt 顯示提示並讀一行；輸入結束 (EOF) 回傳 ok=false
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

// promptAmount 讀取並解析金額；非數字由這一層攔下，不會進到核心
func (m *Menu) promptAmount(label string) (decimal.Decimal, bool) {
	raw, ok := m.prompt(label)
	if !ok {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		fmt.Fprintln(m.out, "Error: Invalid amount entered. Please enter a number.")
		return decimal.Zero, false
	}
	return amount, true
}

func (m *Menu) createAccount(ctx context.Context) {
	fmt.Fprintln(m.out, "\n--- Create New Account ---")
	fmt.Fprintln(m.out, "Available Branches:")
	for _, branch := range m.core.Branches() {
		fmt.Fprintf(m.out, "  %s: %s\n", branch.Code, branch.Name)
	}

	branchCode, ok := m.prompt("Enter the branch code: ")
	if !ok {
		return
	}
	holderName, ok := m.prompt("Enter account holder name: ")
	if !ok {
		return
	}
	initialBalance, ok := m.promptAmount("Enter initial deposit amount: ")
	if !ok {
		return
	}

	account, err := m.core.CreateAccount(ctx, strings.TrimSpace(branchCode), holderName, initialBalance)
	if err != nil {
		m.printError(err)
		return
	}

	fmt.Fprintln(m.out, strings.Repeat("-", 20))
	fmt.Fprintln(m.out, "Account created successfully!")
	fmt.Fprintf(m.out, "Account Number: %s\n", account.AccountNumber)
	fmt.Fprintf(m.out, "Account Holder: %s\n", account.HolderName)
	fmt.Fprintf(m.out, "Initial Balance: %s\n", account.Balance.StringFixed(2))
	fmt.Fprintln(m.out, strings.Repeat("-", 20))
}

func (m *Menu) deposit(ctx context.Context) {
	fmt.Fprintln(m.out, "\n--- Deposit Money ---")
	number, ok := m.prompt("Enter account number: ")
	if !ok {
		return
	}
	amount, ok := m.promptAmount("Enter amount to deposit: ")
	if !ok {
		return
	}

	newBalance, err := m.core.Deposit(ctx, strings.TrimSpace(number), amount)
	if err != nil {
		m.printError(err)
		return
	}
	fmt.Fprintln(m.out, "Deposit successful.")
	fmt.Fprintf(m.out, "New balance for account %s: %s\n", strings.TrimSpace(number), newBalance.StringFixed(2))
}

func (m *Menu) withdraw(ctx context.Context) {
	fmt.Fprintln(m.out, "\n--- Withdraw Money ---")
	number, ok := m.prompt("Enter account number: ")
	if !ok {
		return
	}
	amount, ok := m.promptAmount("Enter amount to withdraw: ")
	if !ok {
		return
	}

	newBalance, err := m.core.Withdraw(ctx, strings.TrimSpace(number), amount)
	if err != nil {
		m.printError(err)
		return
	}
	fmt.Fprintln(m.out, "Withdrawal successful.")
	fmt.Fprintf(m.out, "New balance for account %s: %s\n", strings.TrimSpace(number), newBalance.StringFixed(2))
}

func (m *Menu) checkBalance(ctx context.Context) {
	fmt.Fprintln(m.out, "\n--- Check Balance ---")
	number, ok := m.prompt("Enter account number: ")
	if !ok {
		return
	}

	balance, err := m.core.GetBalance(ctx, strings.TrimSpace(number))
	if err != nil {
		m.printError(err)
		return
	}
	fmt.Fprintf(m.out, "Current balance for account %s: %s\n", strings.TrimSpace(number), balance.StringFixed(2))
}

func (m *Menu) history(ctx context.Context) {
	fmt.Fprintln(m.out, "\n--- Transaction History ---")
	number, ok := m.prompt("Enter account number: ")
	if !ok {
		return
	}
	number = strings.TrimSpace(number)

	holderName, transactions, err := m.core.GetHistory(ctx, number)
	if err != nil {
		m.printError(err)
		return
	}

	fmt.Fprintf(m.out, "\nTransaction History for Account: %s\n", number)
	fmt.Fprintf(m.out, "Account Holder: %s\n", holderName)
	fmt.Fprintln(m.out, strings.Repeat("-", 60))
	if len(transactions) == 0 {
		fmt.Fprintln(m.out, "No transactions found for this account.")
	} else {
		fmt.Fprintf(m.out, "%-20s | %-15s | %-10s | %-15s\n", "Timestamp", "Type", "Amount", "Balance After")
		fmt.Fprintln(m.out, strings.Repeat("-", 60))
		for _, tx := range transactions {
			fmt.Fprintf(m.out, "%-20s | %-15s | %-10s | %-15s\n",
				tx.Timestamp.Format(timestampLayout),
				tx.Type.String(),
				tx.Amount.StringFixed(2),
				tx.BalanceAfter.StringFixed(2),
			)
		}
	}
	fmt.Fprintln(m.out, strings.Repeat("-", 60))
}

// printError 把 domain 錯誤翻成訊息；餘額不足要附上可用餘額
func (m *Menu) printError(err error) {
	var insufficient *domain.InsufficientFundsError
	switch {
	case errors.As(err, &insufficient):
		fmt.Fprintln(m.out, "Error: Insufficient funds.")
		fmt.Fprintf(m.out, "Available balance: %s\n", insufficient.Available.StringFixed(2))
	case errors.Is(err, domain.ErrUnknownBranch):
		fmt.Fprintln(m.out, "Error: Invalid branch code.")
	case errors.Is(err, domain.ErrInvalidHolderName):
		fmt.Fprintln(m.out, "Error: Account holder name cannot be empty.")
	case errors.Is(err, domain.ErrNegativeAmount):
		fmt.Fprintln(m.out, "Error: Initial deposit cannot be negative.")
	case errors.Is(err, domain.ErrInvalidAmount):
		fmt.Fprintln(m.out, "Error: Amount must be positive.")
	case errors.Is(err, domain.ErrAccountNotFound):
		fmt.Fprintln(m.out, "Error: Account not found.")
	default:
		fmt.Fprintf(m.out, "Error: %v\n", err)
	}
}
