package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/zagros-construction/zagros-api/internal/dto"
)

// ErrInvalidCredentials is returned when the submitted credential pair does
// not match the configured admin account.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService implements the admin session gate: one configured credential
// pair, a signed token on success. There is no user model; the credentials
// come from configuration, never from source.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	username   string
	password   string
	secret     []byte
	sessionTTL time.Duration
	validator  *validator.Validate
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(username, password, secret string, sessionTTL time.Duration, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		username:   username,
		password:   password,
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		validator:  validate,
		logger:     logger.With().Str("component", "auth_service").Logger(),
		now:        time.Now,
	}
}

func (s *authService) Login(_ context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	userMatch := subtle.ConstantTimeCompare([]byte(payload.Username), []byte(s.username))
	passMatch := subtle.ConstantTimeCompare([]byte(payload.Password), []byte(s.password))
	if userMatch&passMatch != 1 {
		s.logger.Warn().Str("username", payload.Username).Msg("rejected admin login")
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.sessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   s.username,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		Issuer:    "zagros-api",
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to sign session token")
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{Token: signed, ExpiresAt: expiresAt}, nil
}
