// internal/ledger/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 這些錯誤皆屬使用者輸入層級，由 console 層轉換成對應的提示訊息，選單迴圈照常繼續。

package ledger

import "errors"

var (
	// ErrFull 代表帳本已達帳戶上限。
	ErrFull = errors.New("ledger is full")

	// ErrDuplicate 代表帳號已存在。
	ErrDuplicate = errors.New("account number already exists")

	// ErrInvalidName 代表戶名為空或含有英數字與空白以外的字元。
	ErrInvalidName = errors.New("invalid account holder name")

	// ErrNotFound 代表帳戶不存在。
	ErrNotFound = errors.New("account not found")

	// ErrNonPositiveAmount 代表金額 <= 0。
	ErrNonPositiveAmount = errors.New("amount must be > 0")

	// ErrInsufficientFunds 代表提款金額超過餘額。
	ErrInsufficientFunds = errors.New("insufficient funds")
)
