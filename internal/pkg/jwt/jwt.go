package jwt

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/attendease/attendease-backend-go/internal/domain/auth"
	"github.com/attendease/attendease-backend-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess = "access"

	ClaimEmployeeID      = "employee_id"
	ClaimName            = "name"
	ClaimRole            = "role"
	ClaimEmail           = "email"
	ClaimPhone           = "phone"
	ClaimPhoneVerified   = "is_phone_verified"
	ClaimType            = "type"
	ClaimTokenIdentifier = "jti"
)

type Service interface {
	GenerateAccessToken(user auth.SessionUser) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(tokenID string, expiresAt time.Time)
	IsTokenRevoked(tokenID string) bool
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
	// jti -> token expiry; entries are pruned once the token would be
	// rejected by its exp claim anyway
	revokedTokens map[string]time.Time
	mu            sync.RWMutex
	now           func() time.Time
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (*JWTService, error) {
	expiration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTokenExpirationTime: expiration,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]time.Time),
		now:                       time.Now,
	}, nil
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(user auth.SessionUser) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpirationTime).Unix()

	claims := map[string]interface{}{
		ClaimEmployeeID:      user.ID,
		ClaimName:            user.Name,
		ClaimRole:            string(user.Role),
		ClaimType:            TokenTypeAccess,
		ClaimTokenIdentifier: uuid.NewString(),
		"exp":                expiresAt,
	}
	if user.Email != nil {
		claims[ClaimEmail] = *user.Email
	}
	if user.Phone != nil {
		claims[ClaimPhone] = *user.Phone
	}
	if user.IsPhoneVerified != nil {
		claims[ClaimPhoneVerified] = *user.IsPhoneVerified
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) RevokeToken(tokenID string, expiresAt time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	for id, exp := range j.revokedTokens {
		if now.After(exp) {
			delete(j.revokedTokens, id)
		}
	}
	j.revokedTokens[tokenID] = expiresAt
}

func (j *JWTService) IsTokenRevoked(tokenID string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[tokenID]
	return revoked
}

// SessionFromContext rebuilds the session view from the verified token that
// jwtauth.Verifier stored in ctx. It also returns the token id and expiry,
// which Logout needs to revoke the token.
func SessionFromContext(ctx context.Context) (auth.SessionUser, string, time.Time, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		if errors.Is(err, jwtauth.ErrNoTokenFound) {
			return auth.SessionUser{}, "", time.Time{}, auth.ErrNoSession
		}
		return auth.SessionUser{}, "", time.Time{}, auth.ErrInvalidToken
	}
	if token == nil {
		return auth.SessionUser{}, "", time.Time{}, auth.ErrNoSession
	}

	if t, _ := claims[ClaimType].(string); t != TokenTypeAccess {
		return auth.SessionUser{}, "", time.Time{}, auth.ErrInvalidToken
	}

	id, _ := claims[ClaimEmployeeID].(string)
	if id == "" {
		return auth.SessionUser{}, "", time.Time{}, auth.ErrInvalidToken
	}
	name, _ := claims[ClaimName].(string)
	role, _ := claims[ClaimRole].(string)

	user := auth.SessionUser{
		ID:   id,
		Name: name,
		Role: employee.Role(role),
	}
	if email, ok := claims[ClaimEmail].(string); ok {
		user.Email = &email
	}
	if phone, ok := claims[ClaimPhone].(string); ok {
		user.Phone = &phone
	}
	if verified, ok := claims[ClaimPhoneVerified].(bool); ok {
		user.IsPhoneVerified = &verified
	}

	return user, token.JwtID(), token.Expiration(), nil
}
