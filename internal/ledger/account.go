// internal/ledger/account.go

// Package ledger 定義帳本核心模型與業務規則。
// 本檔定義 Account 結構，不含任何 I/O 或選單細節。
package ledger

import "github.com/shopspring/decimal"

// Account represents a ledger account.
type Account struct {
	Number  string          `json:"number"`
	Holder  string          `json:"holder"`
	Balance decimal.Decimal `json:"balance"`
}
