package domain

import "sort"

// UnknownBranchName 查不到分行代碼時的預設名稱。
// 這是刻意的 fallback 值，不是錯誤 (開戶驗證走 Has，不走這裡)。
const UnknownBranchName = "Unknown Branch"

// Branch 分行參考資料
type Branch struct {
	Code string
	Name string
}

// BranchTable 分行對照表：程式啟動時從設定載入，之後不再變動
type BranchTable struct {
	bankCode string
	branches map[string]string
}

// NewBranchTable 建立分行對照表，傳入的 map 會被複製以維持不可變
func NewBranchTable(bankCode string, branches map[string]string) *BranchTable {
	cp := make(map[string]string, len(branches))
	for code, name := range branches {
		cp[code] = name
	}
	return &BranchTable{
		bankCode: bankCode,
		branches: cp,
	}
}

// BankCode 回傳銀行代碼 (帳號的固定前綴)
func (t *BranchTable) BankCode() string {
	return t.bankCode
}

// Has 回報分行代碼是否存在
func (t *BranchTable) Has(code string) bool {
	_, ok := t.branches[code]
	return ok
}

// Name 依代碼取得分行名稱；查無資料回傳 UnknownBranchName
func (t *BranchTable) Name(code string) string {
	name, ok := t.branches[code]
	if !ok {
		return UnknownBranchName
	}
	return name
}

// List 回傳所有分行，依代碼排序 (供選單與 API 穩定輸出)
func (t *BranchTable) List() []Branch {
	out := make([]Branch, 0, len(t.branches))
	for code, name := range t.branches {
		out = append(out, Branch{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
