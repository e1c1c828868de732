package wal

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

type testRecord struct {
	Seq  int    `json:"seq"`
	Note string `json:"note"`
}

// TestWriteReadAllRoundTrip 寫入多筆後重開檔案，ReadAll 依寫入順序讀回
func TestWriteReadAllRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.wal")

	w, err := NewWAL(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := w.Write(&testRecord{Seq: i, Note: "n"}); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewWAL(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	var got []testRecord
	err = reopened.ReadAll(func(jsonRaw []byte) error {
		var rec testRecord
		if err := json.Unmarshal(jsonRaw, &rec); err != nil {
			return err
		}
		got = append(got, rec)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 5 {
		t.Fatalf("records=%d want=5", len(got))
	}
	for i, rec := range got {
		if rec.Seq != i {
			t.Fatalf("records out of order: got[%d].Seq=%d", i, rec.Seq)
		}
	}
}

// TestReadAllEmpty 空檔案讀回零筆，不報錯
func TestReadAllEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wal")

	w, err := NewWAL(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	count := 0
	err = w.ReadAll(func([]byte) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("count=%d want=0", count)
	}
}

// TestWriteAfterReadAll ReadAll 之後繼續追加，O_APPEND 保證寫到檔尾
func TestWriteAfterReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "append.wal")

	w, err := NewWAL(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Write(&testRecord{Seq: 0}); err != nil {
		t.Fatal(err)
	}
	if err := w.ReadAll(func([]byte) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(&testRecord{Seq: 1}); err != nil {
		t.Fatal(err)
	}

	count := 0
	if err := w.ReadAll(func([]byte) error { count++; return nil }); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("count=%d want=2", count)
	}
}
