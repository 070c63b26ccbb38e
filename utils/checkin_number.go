package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"regexp"
	"strings"
)

// EnvOrDefault returns the ENV value or the fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

const checkInCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCheckInNumber produces an n-character A-Z0-9 code, e.g. "AB4D93KF".
// crypto/rand + big.Int avoids modulo bias.
func GenerateCheckInNumber(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(checkInCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(checkInCharset[num.Int64()])
	}
	return sb.String(), nil
}

// FormatCheckInNumber renders an 8-char raw code as "XXXX-XXXX".
func FormatCheckInNumber(raw string) (string, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	raw = strings.ReplaceAll(raw, "-", "")
	if len(raw) != 8 {
		return "", errors.New("raw must be length 8")
	}
	return raw[:4] + "-" + raw[4:], nil
}

var nonAlnum = regexp.MustCompile(`[^A-Z0-9]`)

// NormalizeCheckInNumber strips hyphens and any other non-alphanumerics.
func NormalizeCheckInNumber(code string) string {
	s := strings.ToUpper(strings.TrimSpace(code))
	return nonAlnum.ReplaceAllString(s, "")
}

// IsValidCheckInNumberFormat accepts "ABCDEFGH" or "ABCD-EFGH".
func IsValidCheckInNumberFormat(code string) bool {
	c := strings.TrimSpace(code)
	if c == "" {
		return false
	}
	match1, _ := regexp.MatchString(`^[A-Za-z0-9]{8}$`, c)
	match2, _ := regexp.MatchString(`^[A-Za-z0-9]{4}-[A-Za-z0-9]{4}$`, c)
	return match1 || match2
}
