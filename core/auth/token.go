// Package auth issues and verifies the bearer tokens handed out at login.
//
// Tokens are stateless HS256 JWTs carrying the username as subject plus an expiry.
// There is no revocation and no refresh.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const TokenType = "bearer"

var (
	NowFunc = time.Now // mockable

	// verification failure reasons
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
	ErrMissingSubject   = errors.New("token has no subject")
	ErrUnknownSubject   = errors.New("token subject not found")
)

// Error is returned by every failed verification. Reason is one of the Err* values above.
// Clients never see the reason: all of them map to the same "invalid credentials" response.
type Error struct {
	Reason error
	Err    error
}

func newError(reason, err error) *Error {
	return &Error{Reason: reason, Err: err}
}

// NewSubjectError reports a valid token whose subject does not resolve to a user.
func NewSubjectError(subject string) *Error {
	return newError(ErrUnknownSubject, fmt.Errorf("subject %q", subject))
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Reason.Error()
	}
	return e.Reason.Error() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Reason }

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
}

// Tokens signs and verifies tokens with a fixed secret and algorithm.
type Tokens struct {
	secret     []byte
	method     jwt.SigningMethod
	expiration time.Duration
}

func NewTokens(secretKey string, expiration time.Duration) *Tokens {
	return &Tokens{
		secret:     []byte(secretKey),
		method:     jwt.SigningMethodHS256,
		expiration: expiration,
	}
}

// Issue generates a signed token for subject, expiring after ttl (defaults to the configured expiration).
func (t *Tokens) Issue(subject string, ttl ...time.Duration) (string, error) {
	exp := t.expiration
	if len(ttl) > 0 {
		exp = ttl[0]
	}
	now := NowFunc()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			ExpiresAt: now.Add(exp).Unix(),
			IssuedAt:  now.Unix(),
		},
	}

	ss, err := jwt.NewWithClaims(t.method, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return ss, nil
}

// Verify checks the token's signature, expiry and subject, and returns its claims.
func (t *Tokens) Verify(token string) (Claims, error) {
	if token == "" {
		return Claims{}, newError(ErrMalformedToken, nil)
	}

	claims := new(Claims)
	_, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != t.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", tok.Method.Alg())
		}
		return t.secret, nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}
	if claims.Subject == "" {
		return Claims{}, newError(ErrMissingSubject, nil)
	}
	return *claims, nil
}

func classify(err error) *Error {
	vErr, ok := err.(*jwt.ValidationError)
	if !ok {
		return newError(ErrMalformedToken, err)
	}
	switch {
	case vErr.Errors&jwt.ValidationErrorMalformed != 0:
		return newError(ErrMalformedToken, err)
	case vErr.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) != 0:
		return newError(ErrInvalidSignature, err)
	case vErr.Errors&jwt.ValidationErrorExpired != 0:
		return newError(ErrTokenExpired, err)
	default:
		return newError(ErrMalformedToken, err)
	}
}
