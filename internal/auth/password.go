package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

var (
	adjectives = []string{
		"quick", "bright", "calm", "bold", "clever", "swift", "wise", "brave",
		"gentle", "happy", "proud", "strong", "noble", "keen", "fair", "warm",
	}
	nouns = []string{
		"tiger", "eagle", "falcon", "panther", "wolf", "lion", "hawk", "owl",
		"river", "forest", "comet", "galaxy", "aurora", "meteor", "horizon", "summit",
	}
	// specialChars is the symbol set a password must draw from. Generated
	// passwords use it too, so it avoids characters that need HTML escaping.
	specialChars = "!@#$%^&*()+=?.,:;"
)

func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword enforces the strength policy: at least eight characters with
// an upper-case letter, a lower-case letter, a digit and one of specialChars.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, MinPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: must be at most %d bytes", ErrWeakPassword, maxPasswordBytes)
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(specialChars, r):
			symbol = true
		}
	}
	var missing []string
	if !upper {
		missing = append(missing, "an upper-case letter")
	}
	if !lower {
		missing = append(missing, "a lower-case letter")
	}
	if !digit {
		missing = append(missing, "a digit")
	}
	if !symbol {
		missing = append(missing, "a symbol")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: needs %s", ErrWeakPassword, strings.Join(missing, ", "))
	}
	return nil
}

// GeneratePassword creates a memorable one-time password that passes
// ValidatePassword, e.g. BrightFalcon42!.
func GeneratePassword() (string, error) {
	adjective, err := pick(adjectives)
	if err != nil {
		return "", fmt.Errorf("generate adjective: %w", err)
	}
	noun, err := pick(nouns)
	if err != nil {
		return "", fmt.Errorf("generate noun: %w", err)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(90))
	if err != nil {
		return "", fmt.Errorf("generate number: %w", err)
	}
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(specialChars))))
	if err != nil {
		return "", fmt.Errorf("generate special char: %w", err)
	}
	return capitalize(adjective) + capitalize(noun) + fmt.Sprintf("%d", 10+n.Int64()) + string(specialChars[idx.Int64()]), nil
}

func pick(words []string) (string, error) {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		return "", err
	}
	return words[idx.Int64()], nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
