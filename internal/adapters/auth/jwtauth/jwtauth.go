// Package jwtauth verifies HS256 bearer tokens and yields the acting user
// it plugs into httpkit.NewPortFunc as a TokenFunc
package jwtauth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	perr "producescan/internal/platform/errors"
)

// ErrNoSubject is returned for a valid token that names nobody
var ErrNoSubject = errors.New("jwtauth: token carries no subject")

// Options configures a Verifier
type Options struct {
	Secret string
	// Issuer is checked when set
	Issuer string
	// Leeway tolerates clock skew on exp and nbf
	Leeway time.Duration
}

// Verifier checks tokens signed with a shared secret
type Verifier struct {
	secret []byte
	parser *jwt.Parser
	issuer string
}

// New builds a Verifier, an empty secret is a configuration error
func New(o Options) (*Verifier, error) {
	if strings.TrimSpace(o.Secret) == "" {
		return nil, perr.InvalidArgf("jwt secret is required")
	}
	popts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(o.Leeway),
	}
	if o.Issuer != "" {
		popts = append(popts, jwt.WithIssuer(o.Issuer))
	}
	return &Verifier{secret: []byte(o.Secret), parser: jwt.NewParser(popts...), issuer: o.Issuer}, nil
}

// Parse matches httpkit.TokenFunc
func (v *Verifier) Parse(raw string) (string, error) {
	claims := jwt.MapClaims{}
	tok, err := v.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !tok.Valid {
		return "", jwt.ErrTokenUnverifiable
	}
	uid := subject(claims)
	if uid == "" {
		return "", ErrNoSubject
	}
	return uid, nil
}

// subject prefers the registered sub claim and falls back to userID
func subject(c jwt.MapClaims) string {
	if s, err := c.GetSubject(); err == nil && s != "" {
		return s
	}
	if s, ok := c["userID"].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// Sign issues a token for sub, used by operators and tests
func (v *Verifier) Sign(sub string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(sub) == "" {
		return "", ErrNoSubject
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": sub,
		"iat": now.Unix(),
	}
	if ttl > 0 {
		claims["exp"] = now.Add(ttl).Unix()
	}
	if v.issuer != "" {
		claims["iss"] = v.issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
