package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// DefaultValidity applies when Issue is called without a positive validity.
const DefaultValidity = 15 * time.Minute

// TokenConfig is the process-wide signing configuration shared by Issuer and
// Verifier. Rotating Secret invalidates every outstanding token.
type TokenConfig struct {
	Secret []byte
	// Algorithm is an HMAC JWT algorithm name: HS256, HS384 or HS512.
	Algorithm string
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// Claims is the JWT payload of an access token.
type Claims struct {
	UserID *int64  `json:"id,omitempty"`
	Role   *string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (c TokenConfig) method() (jwt.SigningMethod, error) {
	name := c.Algorithm
	if name == "" {
		name = jwt.SigningMethodHS256.Alg()
	}
	m, ok := jwt.GetSigningMethod(name).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", name)
	}
	return m, nil
}

func (c TokenConfig) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c TokenConfig) validate() (jwt.SigningMethod, error) {
	if len(c.Secret) == 0 {
		return nil, errors.New("token secret must not be empty")
	}
	return c.method()
}

// Issuer mints signed access tokens.
type Issuer struct {
	cfg    TokenConfig
	method jwt.SigningMethod
}

func NewIssuer(cfg TokenConfig) (*Issuer, error) {
	m, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	return &Issuer{cfg: cfg, method: m}, nil
}

// Issue signs a token carrying subject, id and role that expires after
// validity (DefaultValidity when validity <= 0).
func (i *Issuer) Issue(subject string, id int64, role string, validity time.Duration) (string, error) {
	if validity <= 0 {
		validity = DefaultValidity
	}
	now := i.cfg.now()
	claims := Claims{
		UserID: &id,
		Role:   &role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(i.method, claims).SignedString(i.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verifier validates access tokens signed by an Issuer sharing its config.
type Verifier struct {
	cfg    TokenConfig
	parser *jwt.Parser
}

func NewVerifier(cfg TokenConfig) (*Verifier, error) {
	m, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{m.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(cfg.now),
	)
	return &Verifier{cfg: cfg, parser: parser}, nil
}

// Verify checks the token signature and expiry and returns the identity it
// carries. Expired tokens fail with domain.ErrExpiredCredential; every other
// failure is domain.ErrInvalidCredential.
func (v *Verifier) Verify(token string) (domain.Identity, error) {
	var claims Claims
	_, err := v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return v.cfg.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrExpiredCredential
		}
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrInvalidCredential, err)
	}

	if claims.Subject == "" || claims.UserID == nil {
		return domain.Identity{}, fmt.Errorf("%w: missing subject or id", domain.ErrInvalidCredential)
	}

	id := domain.Identity{Subject: claims.Subject, ID: *claims.UserID}
	if claims.Role != nil {
		id.Role = *claims.Role
	}
	return id, nil
}
