package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/horus-ai/internal/api"
)

const (
	tokenIssuer   = "horus-ai"
	tokenAudience = "horus-ai-admin"
)

var _ AuthService = (*AuthServiceImpl)(nil)

type AuthService interface {
	Login(ctx context.Context, username, password string) (TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

type Options struct {
	AdminUser         string
	AdminPasswordHash string
	JWTSecret         string
	TokenTTL          time.Duration
}

type AuthServiceImpl struct {
	adminUser    string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

func NewAuthService(opts Options, logger *slog.Logger) *AuthServiceImpl {
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthServiceImpl{
		adminUser:    opts.AdminUser,
		passwordHash: []byte(opts.AdminPasswordHash),
		secret:       []byte(opts.JWTSecret),
		ttl:          ttl,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (TokenResponse, error) {
	_, span := otel.Tracer("AuthService").Start(ctx, "Login", trace.WithAttributes(
		attribute.String("username", username),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Login"))

	if len(s.passwordHash) == 0 || len(s.secret) == 0 {
		span.SetStatus(codes.Error, "admin disabled")
		return TokenResponse{}, ErrAdminDisabled
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUser)) == 1
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil || !userOK {
		l.WarnContext(ctx, "Rejected admin login", slog.String("username", username))
		span.SetStatus(codes.Error, "invalid credentials")
		return TokenResponse{}, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		Role: AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sign token")
		return TokenResponse{}, fmt.Errorf("failed to sign token: %w", err)
	}

	l.InfoContext(ctx, "Issued admin token", slog.Time("expires_at", expiresAt))
	span.SetStatus(codes.Ok, "token issued")
	return TokenResponse{AccessToken: signed, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}

func (s *AuthServiceImpl) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	_, span := otel.Tracer("AuthService").Start(ctx, "ValidateToken")
	defer span.End()

	if len(s.secret) == 0 {
		return nil, ErrAdminDisabled
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token rejected")
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Role != AdminRole || !api.VerifyAudience(claims.Audience, tokenAudience) {
		span.SetStatus(codes.Error, "token rejected")
		return nil, ErrInvalidToken
	}
	span.SetStatus(codes.Ok, "token valid")
	return claims, nil
}
