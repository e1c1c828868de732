package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	http_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/in/http"
	memory_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/out/memory"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
)

// newTestApp 組一個記憶體後端的 fiber app
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	branches := domain.NewBranchTable("500", map[string]string{
		"001": "Jaffna Branch",
		"002": "Colombo Branch",
	})
	ledger, err := memory_adapter.NewMutexLedger(domain.NewNumberGenerator("500"), nil)
	if err != nil {
		t.Fatalf("NewMutexLedger err=%v", err)
	}
	core := usecase.NewCoreUseCase(branches, ledger)

	app := fiber.New()
	http_adapter.RegisterRoutes(app, http_adapter.NewHandler(core))
	return app
}

// doJSON 發送 JSON 請求並解析回應
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, out
}

// TestCreateDepositWithdrawFlow 走完整流程並驗證狀態碼與回應內容
func TestCreateDepositWithdrawFlow(t *testing.T) {
	app := newTestApp(t)

	status, created := doJSON(t, app, nethttp.MethodPost, "/v1/accounts", map[string]string{
		"branch_code":     "002",
		"holder_name":     "Asha",
		"initial_balance": "100.00",
	})
	if status != nethttp.StatusCreated {
		t.Fatalf("create status=%d body=%v", status, created)
	}
	number, _ := created["account_number"].(string)
	if number == "" {
		t.Fatalf("missing account_number: %v", created)
	}
	if created["balance"] != "100.00" {
		t.Fatalf("balance=%v want=100.00", created["balance"])
	}
	if created["branch_name"] != "Colombo Branch" {
		t.Fatalf("branch_name=%v", created["branch_name"])
	}

	status, body := doJSON(t, app, nethttp.MethodPost, "/v1/accounts/"+number+"/deposit", map[string]string{"amount": "50.00"})
	if status != nethttp.StatusOK || body["balance"] != "150.00" {
		t.Fatalf("deposit status=%d body=%v", status, body)
	}

	// 超額提款 → 409，附可用餘額
	status, body = doJSON(t, app, nethttp.MethodPost, "/v1/accounts/"+number+"/withdraw", map[string]string{"amount": "200.00"})
	if status != nethttp.StatusConflict {
		t.Fatalf("overdraft status=%d body=%v", status, body)
	}
	if body["available_balance"] != "150.00" {
		t.Fatalf("available_balance=%v want=150.00", body["available_balance"])
	}

	status, body = doJSON(t, app, nethttp.MethodGet, "/v1/accounts/"+number+"/balance", nil)
	if status != nethttp.StatusOK || body["balance"] != "150.00" {
		t.Fatalf("balance status=%d body=%v", status, body)
	}

	status, body = doJSON(t, app, nethttp.MethodGet, "/v1/accounts/"+number+"/transactions", nil)
	if status != nethttp.StatusOK {
		t.Fatalf("history status=%d", status)
	}
	transactions, _ := body["transactions"].([]any)
	if len(transactions) != 2 {
		t.Fatalf("transactions len=%d want=2 (%v)", len(transactions), body)
	}
	last, _ := transactions[1].(map[string]any)
	if last["type"] != "deposit" || last["balance_after"] != "150.00" {
		t.Fatalf("last transaction=%v", last)
	}
}

// TestCreateAccountValidation 驗證錯誤都回 400
func TestCreateAccountValidation(t *testing.T) {
	app := newTestApp(t)

	cases := []map[string]string{
		{"branch_code": "999", "holder_name": "A", "initial_balance": "10"},
		{"branch_code": "001", "holder_name": "   ", "initial_balance": "10"},
		{"branch_code": "001", "holder_name": "A", "initial_balance": "-1"},
		{"branch_code": "001", "holder_name": "A", "initial_balance": "not-a-number"},
	}
	for i, payload := range cases {
		status, body := doJSON(t, app, nethttp.MethodPost, "/v1/accounts", payload)
		if status != nethttp.StatusBadRequest {
			t.Fatalf("case %d: status=%d body=%v", i, status, body)
		}
	}
}

// TestAccountNotFound 不存在的帳號 → 404
func TestAccountNotFound(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, nethttp.MethodGet, "/v1/accounts/500001000000/balance", nil)
	if status != nethttp.StatusNotFound {
		t.Fatalf("status=%d want=404", status)
	}
	status, _ = doJSON(t, app, nethttp.MethodPost, "/v1/accounts/500001000000/deposit", map[string]string{"amount": "1"})
	if status != nethttp.StatusNotFound {
		t.Fatalf("deposit status=%d want=404", status)
	}
}

// TestListBranches 分行列表依代碼排序
func TestListBranches(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, nethttp.MethodGet, "/v1/branches", nil)
	if status != nethttp.StatusOK {
		t.Fatalf("status=%d", status)
	}
	branches, _ := body["branches"].([]any)
	if len(branches) != 2 {
		t.Fatalf("branches len=%d want=2", len(branches))
	}
	first, _ := branches[0].(map[string]any)
	if first["code"] != "001" {
		t.Fatalf("first branch=%v want code 001", first)
	}
}

// TestHistoryEmptyDistinctFromNotFound 零交易帳戶回空陣列 200，不是 404
func TestHistoryEmptyDistinctFromNotFound(t *testing.T) {
	app := newTestApp(t)

	_, created := doJSON(t, app, nethttp.MethodPost, "/v1/accounts", map[string]string{
		"branch_code":     "001",
		"holder_name":     "Zed",
		"initial_balance": decimal.Zero.String(),
	})
	number, _ := created["account_number"].(string)

	status, body := doJSON(t, app, nethttp.MethodGet, "/v1/accounts/"+number+"/transactions", nil)
	if status != nethttp.StatusOK {
		t.Fatalf("status=%d want=200", status)
	}
	transactions, _ := body["transactions"].([]any)
	if len(transactions) != 0 {
		t.Fatalf("transactions len=%d want=0", len(transactions))
	}
}
