// internal/ledger/ledger.go

// Package ledger 定義核心商業邏輯：帳戶建立、存款、提款與餘額查詢。
// 帳本由單一選單迴圈擁有並循序呼叫，因此不持有鎖。
// 金額以 decimal.Decimal 儲存，避免浮點誤差。
package ledger

import (
	"github.com/shopspring/decimal"
)

// MaxAccounts 為帳本可容納的帳戶上限。
const MaxAccounts = 10

// Ledger 為聚合根 (Aggregate Root)：管理全部帳戶。
// - capacity：帳戶數上限，建立前明確檢查。
// - accts：帳戶索引表（帳號 → *Account），帳戶建立後只會被存提款就地修改，從不刪除。
type Ledger struct {
	capacity int
	accts    map[string]*Account
}

// New 建立空白帳本；capacity <= 0 時採用 MaxAccounts。
func New(capacity int) *Ledger {
	if capacity <= 0 {
		capacity = MaxAccounts
	}
	return &Ledger{
		capacity: capacity,
		accts:    make(map[string]*Account, capacity),
	}
}

// Len 回傳目前帳戶數。
func (l *Ledger) Len() int { return len(l.accts) }

// Cap 回傳帳戶上限。
func (l *Ledger) Cap() int { return l.capacity }

// Full 回報帳本是否已滿。
func (l *Ledger) Full() bool { return len(l.accts) >= l.capacity }

// Exists 回報帳號是否已被使用。
func (l *Ledger) Exists(number string) bool {
	_, ok := l.accts[number]
	return ok
}

// Create 以帳號與戶名建立帳戶，初始餘額為 0。
// 檢查順序：帳本已滿 → 帳號重複 → 戶名不合法。
// 回傳值拷貝，避免呼叫端越權修改內部狀態。
func (l *Ledger) Create(number, holder string) (*Account, error) {
	if l.Full() {
		return nil, ErrFull
	}
	if l.Exists(number) {
		return nil, ErrDuplicate
	}
	if !ValidHolder(holder) {
		return nil, ErrInvalidName
	}
	a := &Account{Number: number, Holder: holder, Balance: decimal.Zero}
	l.accts[number] = a
	cp := *a
	return &cp, nil
}

// Get 依帳號取得帳戶快照；若不存在回傳 ErrNotFound。
func (l *Ledger) Get(number string) (*Account, error) {
	a, ok := l.accts[number]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// Deposit 存款：金額需 > 0；若帳戶不存在回傳 ErrNotFound。回傳存款後餘額。
func (l *Ledger) Deposit(number string, amt decimal.Decimal) (decimal.Decimal, error) {
	if !amt.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	a, ok := l.accts[number]
	if !ok {
		return decimal.Zero, ErrNotFound
	}
	a.Balance = a.Balance.Add(amt)
	return a.Balance, nil
}

// Withdraw 提款：金額需 > 0 且不得超過餘額（維持非負）；不存在則 ErrNotFound。
// 任何檢查失敗皆不改變餘額。
func (l *Ledger) Withdraw(number string, amt decimal.Decimal) (decimal.Decimal, error) {
	if !amt.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	a, ok := l.accts[number]
	if !ok {
		return decimal.Zero, ErrNotFound
	}
	if a.Balance.LessThan(amt) {
		return decimal.Zero, ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amt)
	return a.Balance, nil
}

// Balance 唯讀查詢餘額；不存在則 ErrNotFound。
func (l *Ledger) Balance(number string) (decimal.Decimal, error) {
	a, ok := l.accts[number]
	if !ok {
		return decimal.Zero, ErrNotFound
	}
	return a.Balance, nil
}
