package domain

import (
	"math/rand"
	"strconv"
	"sync"
	"time"
)

const (
	// 6 位數流水號範圍 100000 ~ 999999
	sequenceMin  = 100000
	sequenceSpan = 900000

	// 重試上限：每個分行前綴約有 90 萬個號碼可用，
	// 正常情況下一兩次就會命中，撞滿才會走到 ErrGenerationExhausted
	maxGenerateAttempts = 1_000_000
)

// NumberGenerator 帳號產生器：在單一 process 存活期間保證不重複發號。
// 不跨重啟保證 (號碼集不落地)；WAL 重放時由 MarkIssued 補登已發出的號碼。
type NumberGenerator struct {
	mu       sync.Mutex
	bankCode string
	rng      *rand.Rand
	issued   map[string]struct{}
}

// NewNumberGenerator 建立帳號產生器
func NewNumberGenerator(bankCode string) *NumberGenerator {
	return &NumberGenerator{
		bankCode: bankCode,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		issued:   make(map[string]struct{}),
	}
}

// Generate 產生一組未發出過的帳號：<bankCode><branchCode><6位數流水>。
// branchCode 由呼叫端先行驗證，這裡不重複檢查。
// 號碼在回傳前就會登記為已發出。
func (g *NumberGenerator) Generate(branchCode string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := 0; i < maxGenerateAttempts; i++ {
		sequence := g.rng.Intn(sequenceSpan) + sequenceMin
		number := g.bankCode + branchCode + strconv.Itoa(sequence)
		if _, used := g.issued[number]; used {
			continue
		}
		g.issued[number] = struct{}{}
		return number, nil
	}
	return "", ErrGenerationExhausted
}

// MarkIssued 補登一組已存在的帳號 (WAL 重放、或從資料庫載入既有帳戶時)，
// 之後 Generate 不會再發出相同號碼
func (g *NumberGenerator) MarkIssued(number string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued[number] = struct{}{}
}

// Issued 回傳已發出的號碼數量
func (g *NumberGenerator) Issued() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.issued)
}
