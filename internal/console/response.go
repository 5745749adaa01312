// internal/console/response.go
//
// 本檔負責統一輸出格式：成功訊息、錯誤提示與金額呈現。
// 錯誤 → 訊息的對應集中在 message，handler 不直接輸出錯誤文字。
package console

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"accountledger/internal/ledger"
)

func (c *Console) printMenu(rs []route) {
	c.write("\nBanking System Menu:\n")
	for _, r := range rs {
		c.writef("%d. %s\n", r.key, r.label)
	}
}

func (c *Console) write(s string) {
	_, _ = fmt.Fprint(c.out, s)
}

func (c *Console) writeLine(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

func (c *Console) writef(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

// writeErr 將錯誤轉為使用者可讀的提示訊息輸出。
func (c *Console) writeErr(err error) {
	c.writeLine(message(err))
}

func message(err error) string {
	switch {
	case errors.Is(err, ledger.ErrFull):
		return "Maximum number of accounts reached."
	case errors.Is(err, ledger.ErrDuplicate):
		return "Account number already exists."
	case errors.Is(err, ledger.ErrInvalidName):
		return "Invalid account holder name. Please enter a valid name."
	case errors.Is(err, ledger.ErrNotFound):
		return "Account not found."
	case errors.Is(err, ledger.ErrNonPositiveAmount):
		return "Invalid amount. Please enter a positive amount."
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "Insufficient funds."
	case errors.Is(err, errInvalidAmount):
		return "Invalid amount. Please enter a number with at most two decimal places."
	case errors.Is(err, errLineTooLong):
		return "Input too long. Please try again."
	default:
		return "Error: " + err.Error()
	}
}

// outcome 為錯誤的穩定短名，用於 metric 與 span 屬性。
func outcome(err error) string {
	switch {
	case errors.Is(err, ledger.ErrFull):
		return "full"
	case errors.Is(err, ledger.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ledger.ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, ledger.ErrNotFound):
		return "not_found"
	case errors.Is(err, ledger.ErrNonPositiveAmount):
		return "non_positive_amount"
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, errInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, errLineTooLong):
		return "input_too_long"
	default:
		return "error"
	}
}

// money 以兩位小數呈現金額。
func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
