package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/padelhub/padel-web/apiclient"
	"github.com/padelhub/padel-web/models"
	"github.com/padelhub/padel-web/repositories"
	"github.com/padelhub/padel-web/session"
)

const minPasswordLength = 8

// ResetOutcome tells the browser where to go once the reset message was shown.
type ResetOutcome struct {
	Redirect        string `json:"redirect"`
	RedirectAfterMS int64  `json:"redirect_after_ms"`
}

type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*session.Session, error)
	Me(ctx context.Context, auth apiclient.Auth) (*models.Me, error)
	ForgotPassword(ctx context.Context, input models.ForgotPasswordInput) error
	ResetPassword(ctx context.Context, input models.ResetPasswordInput) (*ResetOutcome, error)
}

type authService struct {
	userRepo      repositories.UserRepository
	redirectDelay time.Duration
	logger        *slog.Logger
}

func NewAuthService(userRepo repositories.UserRepository, redirectDelay time.Duration, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:      userRepo,
		redirectDelay: redirectDelay,
		logger:        logger,
	}
}

func (s *authService) Login(ctx context.Context, creds models.Credentials) (*session.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" {
		return nil, validationError(ErrEmailRequired)
	}
	if creds.Password == "" {
		return nil, validationError(ErrPasswordRequired)
	}

	resp, err := s.userRepo.Login(ctx, creds)
	if err != nil {
		if apiclient.IsStatus(err, http.StatusUnauthorized) || apiclient.IsStatus(err, http.StatusBadRequest) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return nil, err
	}

	sess, err := session.New(resp.AccessToken, resp.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("login for %s returned no token: %w", creds.Email, err)
	}
	if sess.Email == "" {
		sess.Email = creds.Email
	}
	s.logger.Info("user logged in", slog.String("email", creds.Email), slog.Bool("is_admin", sess.IsAdmin))
	return sess, nil
}

func (s *authService) Me(ctx context.Context, auth apiclient.Auth) (*models.Me, error) {
	me, err := s.userRepo.Me(ctx, auth)
	if err != nil {
		return nil, handleAPIError(err)
	}
	return me, nil
}

func (s *authService) ForgotPassword(ctx context.Context, input models.ForgotPasswordInput) error {
	if blank(input.Email) {
		return validationError(ErrEmailRequired)
	}
	input.Email = strings.TrimSpace(input.Email)
	return s.userRepo.ForgotPassword(ctx, input)
}

func (s *authService) ResetPassword(ctx context.Context, input models.ResetPasswordInput) (*ResetOutcome, error) {
	if blank(input.Token) {
		return nil, validationError(ErrResetTokenRequired)
	}
	if len(input.NewPassword) < minPasswordLength {
		return nil, validationError(ErrPasswordTooShort)
	}
	if err := s.userRepo.ResetPassword(ctx, input); err != nil {
		return nil, err
	}
	return &ResetOutcome{
		Redirect:        session.LoginPath,
		RedirectAfterMS: s.redirectDelay.Milliseconds(),
	}, nil
}
