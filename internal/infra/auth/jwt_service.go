package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"minishop/config"
	domainerrors "minishop/internal/domain/errors"
	"minishop/internal/domain/service"
	"minishop/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Both token purposes share one signing secret; the purpose claim keeps them apart.
type jwtService struct {
	signingSecret string
	accessTTL     time.Duration // Time-to-live for login session tokens.
	verifyTTL     time.Duration // Time-to-live for email-verification tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Signing == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}

	accessTTL := 24 * time.Hour
	verifyTTL := 15 * time.Minute
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.VerifyTokenTTL > 0 {
			verifyTTL = cfg.Auth.VerifyTokenTTL
		}
	}

	return &jwtService{
		signingSecret: cfg.SecretKey.Signing,
		accessTTL:     accessTTL,
		verifyTTL:     verifyTTL,
	}, nil
}

// Issue creates a signed HS256 token carrying the user identity, scoped to a purpose.
func (s *jwtService) Issue(userID uuid.UUID, username string, purpose service.TokenPurpose) (string, error) {
	ttl, err := s.ttlFor(purpose)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &service.Claims{
		UserID:   userID,
		Username: username,
		Purpose:  purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.signingSecret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate checks the signature, expiry and purpose of a token string.
func (s *jwtService) Validate(tokenString string, purpose service.TokenPurpose) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.signingSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrTokenExpired.WrapMessage("token past its expiry")
		}

		return nil, domainerrors.ErrTokenInvalid.WrapMessage("failed to parse token structure")
	}

	if !token.Valid {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("token signature mismatch")
	}

	if claims.Purpose != purpose {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("token purpose mismatch")
	}

	return claims, nil
}

func (s *jwtService) ttlFor(purpose service.TokenPurpose) (time.Duration, error) {
	switch purpose {
	case service.TokenPurposeAccess:
		return s.accessTTL, nil
	case service.TokenPurposeVerify:
		return s.verifyTTL, nil
	default:
		return 0, errors.Errorf("unknown token purpose: %s", purpose)
	}
}
