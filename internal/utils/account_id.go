package utils

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	AccountIDPrefix   = "APS"
	accountIDMinWidth = 3
)

// FormatAccountID renders n with the account prefix, zero-padded to the
// minimum width. Wider numbers are never truncated.
func FormatAccountID(n int) string {
	return fmt.Sprintf("%s%0*d", AccountIDPrefix, accountIDMinWidth, n)
}

// NextAccountID returns the identifier following last. An empty last means
// no account exists yet.
func NextAccountID(last string) (string, error) {
	if last == "" {
		return FormatAccountID(1), nil
	}

	suffix, ok := strings.CutPrefix(last, AccountIDPrefix)
	if !ok || !isDigits(suffix) {
		return "", Internal(fmt.Errorf("unparsable account id %q", last), "Invalid userId format in database")
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return "", Internal(fmt.Errorf("account id %q: %w", last, err), "Invalid userId format in database")
	}
	return FormatAccountID(n + 1), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
