// internal/ledger/validate.go
//
// 戶名驗證：建立帳戶時檢查一次，之後不再重新驗證。

package ledger

// ValidHolder reports whether name is non-empty and made only of ASCII letters, digits and spaces.
func ValidHolder(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
		default:
			return false
		}
	}
	return true
}
