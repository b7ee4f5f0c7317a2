package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin may approve, reject and remove any booking.
const RoleAdmin = "admin"

var (
	errNoSubject   = errors.New("token has no subject")
	errInvalidType = errors.New("token claims have an unexpected shape")
)

// Claims are the access-token claims issued by the club's identity provider.
// The caller id is the registered "sub" claim.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

// VerifierOptions narrows which tokens are accepted.
type VerifierOptions struct {
	// Issuer, when set, must equal the token's "iss" claim.
	Issuer string
	// Leeway tolerates clock skew on exp/nbf/iat.
	Leeway time.Duration
}

// Verifier checks HS256 access tokens. This service never issues tokens.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret string, opts VerifierOptions) *Verifier {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(opts.Leeway),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	return &Verifier{secret: []byte(secret), parser: jwt.NewParser(parserOpts...)}
}

// Verify parses tokenStr and returns its claims when the signature,
// expiry and issuer hold and a subject is present.
func (v *Verifier) Verify(tokenStr string) (*Claims, error) {
	token, err := v.parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errInvalidType
	}
	if claims.UserID() == "" {
		return nil, errNoSubject
	}
	return claims, nil
}
