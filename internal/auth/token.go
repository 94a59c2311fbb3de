package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token validation failures. Expired and malformed tokens must be rejected
// identically by callers deciding authorization.
var (
	ErrTokenExpired       = errors.New("auth: token expired")
	ErrTokenMalformed     = errors.New("auth: token malformed")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

// ClaimSubject is the claim carrying the authenticated principal's username.
const ClaimSubject = "sub"

// TokenManager signs and verifies JWTs with a single symmetric key. It is
// constructed once at startup and safe for concurrent use.
type TokenManager struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager. algorithm must be one of HS256,
// HS384 or HS512; ttlMinutes is the lifetime stamped into every issued token.
func NewTokenManager(secret, algorithm string, ttlMinutes int) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("auth: signing secret cannot be empty")
	}
	if ttlMinutes <= 0 {
		ttlMinutes = 30
	}
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("auth: unsupported signing algorithm %q", algorithm)
	}
	return &TokenManager{
		secret: []byte(secret),
		method: method,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

// Issue signs the given claims after adding an exp of now (UTC) plus the
// configured TTL. The caller's map is not modified.
func (m *TokenManager) Issue(claims jwt.MapClaims) (string, error) {
	toEncode := jwt.MapClaims{}
	for k, v := range claims {
		toEncode[k] = v
	}
	toEncode["exp"] = time.Now().UTC().Add(m.ttl).Unix()

	token := jwt.NewWithClaims(m.method, toEncode)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign token: %w", err)
	}
	return signed, nil
}

// IssueForSubject issues a token whose sub claim is the given username.
func (m *TokenManager) IssueForSubject(username string) (string, error) {
	return m.Issue(jwt.MapClaims{ClaimSubject: username})
}

// Verify decodes the token, checking signature and expiry. It fails with
// ErrTokenExpired when exp has passed and ErrTokenMalformed for every other
// structural or signature problem.
func (m *TokenManager) Verify(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != m.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// Subject extracts the sub claim, failing with ErrInvalidCredentials when it
// is absent or empty.
func Subject(claims jwt.MapClaims) (string, error) {
	sub, ok := claims[ClaimSubject].(string)
	if !ok || sub == "" {
		return "", ErrInvalidCredentials
	}
	return sub, nil
}
