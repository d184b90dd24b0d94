package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
)

const (
	purposeSession = "session"
	purposeReset   = "reset"
)

// SessionClaims is what a session token asserts about its bearer. The profile
// fields are a snapshot taken at login and may be stale.
type SessionClaims struct {
	jwt.RegisteredClaims
	AccountID int64      `json:"aid"`
	Role      model.Role `json:"role"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Purpose   string     `json:"purpose"`
}

// ResetClaims carries the account id and a one-time nonce in the JWT ID.
type ResetClaims struct {
	jwt.RegisteredClaims
	AccountID int64  `json:"aid"`
	Purpose   string `json:"purpose"`
}

type Tokens struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
	now        func() time.Time
}

func NewTokens(secret string, sessionTTL, resetTTL time.Duration) *Tokens {
	return &Tokens{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
		now:        time.Now,
	}
}

func (t *Tokens) IssueSession(a model.Account) (string, time.Time, error) {
	now := t.now()
	expires := now.Add(t.sessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(a.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		AccountID: a.ID,
		Role:      a.Role,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Purpose:   purposeSession,
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// IssueReset returns the signed reset token together with the hash of its
// nonce, which is what gets persisted.
func (t *Tokens) IssueReset(accountID int64) (token, nonceHash string, expires time.Time, err error) {
	nonce, err := randomHex(16)
	if err != nil {
		return "", "", time.Time{}, err
	}
	now := t.now()
	expires = now.Add(t.resetTTL)
	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, ResetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        nonce,
			Subject:   strconv.FormatInt(accountID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		AccountID: accountID,
		Purpose:   purposeReset,
	})
	token, err = jwtToken.SignedString(t.secret)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return token, HashNonce(nonce), expires, nil
}

func (t *Tokens) VerifySession(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := t.parse(token, claims); err != nil {
		return nil, err
	}
	if claims.Purpose != purposeSession || claims.AccountID == 0 || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (t *Tokens) VerifyReset(token string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := t.parse(token, claims); err != nil {
		return nil, err
	}
	if claims.Purpose != purposeReset || claims.AccountID == 0 || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (t *Tokens) parse(token string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrInvalidToken
	}
	if !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}

func HashNonce(nonce string) string {
	sum := sha256.Sum256([]byte(nonce))
	return hex.EncodeToString(sum[:])
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
