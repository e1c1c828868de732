package domain

import "testing"

func newTestTable() *BranchTable {
	return NewBranchTable("500", map[string]string{
		"001": "Jaffna Branch",
		"002": "Colombo Branch",
	})
}

// TestBranchName 查得到回名稱，查不到回 "Unknown Branch" (預設值，不是錯誤)
func TestBranchName(t *testing.T) {
	table := newTestTable()

	if got := table.Name("002"); got != "Colombo Branch" {
		t.Fatalf("Name(002)=%q", got)
	}
	if got := table.Name("999"); got != UnknownBranchName {
		t.Fatalf("Name(999)=%q want=%q", got, UnknownBranchName)
	}
}

// TestBranchTableImmutable 傳入的 map 事後被改不影響對照表
func TestBranchTableImmutable(t *testing.T) {
	src := map[string]string{"001": "Jaffna Branch"}
	table := NewBranchTable("500", src)

	src["001"] = "Tampered"
	src["009"] = "Injected"

	if got := table.Name("001"); got != "Jaffna Branch" {
		t.Fatalf("Name(001)=%q want original value", got)
	}
	if table.Has("009") {
		t.Fatal("table should not see entries added after construction")
	}
}

// TestBranchList 依代碼排序輸出
func TestBranchList(t *testing.T) {
	table := newTestTable()
	list := table.List()

	if len(list) != 2 {
		t.Fatalf("len=%d want=2", len(list))
	}
	if list[0].Code != "001" || list[1].Code != "002" {
		t.Fatalf("list not sorted by code: %+v", list)
	}
}
