package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig configures the JWT authenticator.
type JWTConfig struct {
	// Issuer is the expected token issuer (iss claim). Empty disables the check.
	Issuer string

	// Audience is the expected token audience (aud claim). Empty disables the check.
	Audience string

	// HeaderName is the header containing the token.
	// Default: "Authorization"
	HeaderName string

	// TokenPrefix is the prefix before the token in the header.
	// Default: "Bearer "
	TokenPrefix string

	// PrincipalClaim is the claim containing the principal.
	// Default: "sub"
	PrincipalClaim string

	// RolesClaim is the claim containing roles. Empty disables role extraction.
	RolesClaim string

	// ValidMethods lists the accepted signing algorithms.
	// Default: HS256, HS384, HS512
	ValidMethods []string
}

// KeyProvider retrieves signing keys for JWT validation.
type KeyProvider interface {
	// GetKey returns the key for the given key ID.
	GetKey(ctx context.Context, keyID string) (any, error)
}

// StaticKeyProvider provides a single static HMAC key.
type StaticKeyProvider struct {
	key []byte
}

// NewStaticKeyProvider creates a static key provider.
func NewStaticKeyProvider(key []byte) *StaticKeyProvider {
	return &StaticKeyProvider{key: key}
}

// GetKey returns the static key.
func (p *StaticKeyProvider) GetKey(_ context.Context, _ string) (any, error) {
	if len(p.key) == 0 {
		return nil, ErrKeyNotFound
	}
	return p.key, nil
}

// JWTAuthenticator validates bearer JWTs.
type JWTAuthenticator struct {
	config      JWTConfig
	keyProvider KeyProvider
}

// NewJWTAuthenticator creates a new JWT authenticator.
func NewJWTAuthenticator(config JWTConfig, keyProvider KeyProvider) *JWTAuthenticator {
	if config.HeaderName == "" {
		config.HeaderName = "Authorization"
	}
	if config.TokenPrefix == "" {
		config.TokenPrefix = "Bearer "
	}
	if config.PrincipalClaim == "" {
		config.PrincipalClaim = "sub"
	}
	if len(config.ValidMethods) == 0 {
		config.ValidMethods = []string{"HS256", "HS384", "HS512"}
	}

	return &JWTAuthenticator{
		config:      config,
		keyProvider: keyProvider,
	}
}

// HeaderName returns the header the token is read from.
func (a *JWTAuthenticator) HeaderName() string {
	return a.config.HeaderName
}

// Authenticate validates the token carried in header (the raw header value,
// prefix included) and returns the identity it asserts.
func (a *JWTAuthenticator) Authenticate(ctx context.Context, header string) (*Identity, error) {
	if header == "" {
		return nil, ErrMissingCredentials
	}

	tokenString := strings.TrimPrefix(header, a.config.TokenPrefix)
	if tokenString == header {
		return nil, ErrMissingCredentials
	}
	tokenString = strings.TrimSpace(tokenString)

	opts := []jwt.ParserOption{jwt.WithValidMethods(a.config.ValidMethods)}
	if a.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.config.Issuer))
	}
	if a.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(a.config.Audience))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		kid, _ := token.Header["kid"].(string)
		return a.keyProvider.GetKey(ctx, kid)
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, ErrKeyNotFound):
			return nil, ErrKeyNotFound
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
	}
	if !token.Valid {
		return nil, ErrInvalidCredentials
	}

	return a.buildIdentity(claims), nil
}

func (a *JWTAuthenticator) buildIdentity(claims jwt.MapClaims) *Identity {
	identity := &Identity{
		Claims: make(map[string]any, len(claims)),
	}
	for k, v := range claims {
		identity.Claims[k] = v
	}

	if principal, ok := claims[a.config.PrincipalClaim].(string); ok {
		identity.Principal = principal
	}

	if a.config.RolesClaim != "" {
		if roles, ok := claims[a.config.RolesClaim].([]any); ok {
			identity.Roles = make([]string, 0, len(roles))
			for _, r := range roles {
				if s, ok := r.(string); ok {
					identity.Roles = append(identity.Roles, s)
				}
			}
		}
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		identity.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		identity.IssuedAt = iat.Time
	}

	return identity
}

// Ensure StaticKeyProvider implements KeyProvider
var _ KeyProvider = (*StaticKeyProvider)(nil)

// IssueToken signs an HS256 token for principal that expires after ttl.
// It carries the issuer and audience from config when they are set.
func IssueToken(key []byte, config JWTConfig, principal string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": principal,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if config.Issuer != "" {
		claims["iss"] = config.Issuer
	}
	if config.Audience != "" {
		claims["aud"] = config.Audience
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}
