package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrMalformedToken marks tokens that could not be parsed at all. The
	// filter chain treats these as fatal for the request.
	ErrMalformedToken = errors.New("malformed token")

	// ErrInvalidToken marks tokens that parse but fail verification
	// (expired, bad signature, wrong method). These downgrade the request
	// to anonymous.
	ErrInvalidToken = errors.New("invalid token")
)

// Codec issues and verifies HMAC-signed bearer tokens. The subject is the
// user's normalized email.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a token codec from the decoded signing secret and TTL.
func NewCodec(secret []byte, ttl time.Duration) *Codec {
	return &Codec{secret: secret, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for the given subject. Extra claims are merged in
// without overriding the registered ones.
func (c *Codec) Issue(subject string, extraClaims map[string]any) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{}
	for k, v := range extraClaims {
		claims[k] = v
	}
	claims["sub"] = subject
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(c.ttl).Unix()
	claims["jti"] = uuid.New().String()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ExtractSubject parses and verifies a raw token and returns its subject.
// A token that cannot be parsed yields ErrMalformedToken; one that parses
// but fails verification yields ErrInvalidToken.
func (c *Codec) ExtractSubject(raw string) (string, error) {
	claims, err := c.parse(raw)
	if err != nil {
		return "", err
	}
	sub, _ := claims["sub"].(string)
	return sub, nil
}

// IsValid reports whether raw verifies, carries expectedSubject and has not
// expired. Expiry is an exact comparison against the wall clock, no leeway.
func (c *Codec) IsValid(raw, expectedSubject string) bool {
	claims, err := c.parse(raw)
	if err != nil {
		return false
	}
	sub, _ := claims["sub"].(string)
	if sub != expectedSubject {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return time.Now().Unix() < int64(exp)
}

func (c *Codec) parse(raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
