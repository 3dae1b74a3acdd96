package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dforero/ecobarrio-api/config"
	"github.com/dforero/ecobarrio-api/internal/domain/entity"
	repo "github.com/dforero/ecobarrio-api/internal/domain/repository"
	"github.com/dforero/ecobarrio-api/pkg/helpers"
	"github.com/dforero/ecobarrio-api/pkg/mailer"
	tpl "github.com/dforero/ecobarrio-api/pkg/mailer/templates"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// a caller cannot tell accounts apart from failures.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrConflict           = errors.New("username or email already registered")
	ErrDelivery           = errors.New("reset email delivery failed")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const resetTokenBytes = 32 // 256 bits of randomness in every reset link

// AuthService orchestrates registration, login, and the credential
// lifecycle (password change and reset). It performs no retries: transient
// store or mail failures surface to the caller.
type AuthService struct {
	Repo      repo.UserRepository
	ResetRepo repo.ResetTokenRepository
	JWT       *helpers.JWTManager
	Mail      mailer.Mailer
	Logger    *logrus.Logger
	Cfg       *config.Config
}

func NewAuthService(userRepo repo.UserRepository, resetRepo repo.ResetTokenRepository, jwt *helpers.JWTManager, mail mailer.Mailer, logger *logrus.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		Repo:      userRepo,
		ResetRepo: resetRepo,
		JWT:       jwt,
		Mail:      mail,
		Logger:    logger,
		Cfg:       cfg,
	}
}

type RegisterInput struct {
	Username     string
	Password     string
	Email        string
	Neighborhood string
	Phone        string
	Address      string
	RoleID       int
}

// Register hashes the supplied password and creates the user. Uniqueness of
// username and email is enforced solely by the store, so concurrent
// registrations racing on the same identifier have exactly one winner.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	roleID := in.RoleID
	if roleID <= 0 {
		roleID = 1
	}
	u := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Neighborhood: in.Neighborhood,
		Phone:        in.Phone,
		Address:      in.Address,
		RoleID:       roleID,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "neighborhood": u.Neighborhood}).Info("user registered")
	return u, nil
}

// Login authenticates by email and issues a bearer token. Unknown email and
// wrong password are indistinguishable in both error value and message.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, *entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		return "", time.Time{}, nil, err
	}
	return token, exp, u, nil
}

// ChangePassword overwrites the stored hash for the given user. Callers must
// have proven ownership of the account already; the HTTP layer only routes
// here with a bearer token matching userID.
func (s *AuthService) ChangePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.Logger.WithField("user_id", userID).Info("password changed")
	return nil
}

// RequestPasswordReset issues a single-use reset token for the account
// registered under email, persists its digest, and mails the reset link.
// Delivery failure is reported distinctly from an unknown address.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	raw, err := helpers.GenerateOpaqueToken(resetTokenBytes)
	if err != nil {
		return err
	}
	t := &entity.PasswordResetToken{
		UserID:    u.ID,
		TokenHash: helpers.HashToken(raw),
		ExpiresAt: time.Now().Add(s.Cfg.ResetTokenTTL),
	}
	if err := s.ResetRepo.Create(ctx, t); err != nil {
		return err
	}

	link := s.Cfg.ResetPasswordURL + "?token=" + raw
	if !s.Cfg.MailSendEnabled {
		s.Logger.WithField("user_id", u.ID).Warn("mail sending disabled; reset link not delivered")
		return nil
	}

	data := tpl.NewResetPasswordData(u.Username, link, s.Cfg.CompanyName, s.Cfg.SupportURL, s.Cfg.ResetTokenTTL)
	subject, text, html, err := tpl.Render(tpl.ResetPassword, data)
	if err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}
	if err := s.Mail.Send(ctx, u.Email, strings.TrimSpace(subject), text, html); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("reset email delivery failed")
		return ErrDelivery
	}
	s.Logger.WithField("user_id", u.ID).Info("reset email sent")
	return nil
}

// ResetPassword redeems a reset token and sets the new password. The token
// is consumed atomically in the store, so it works exactly once.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	t, err := s.ResetRepo.Consume(ctx, helpers.HashToken(rawToken))
	if err != nil {
		return err
	}
	if t == nil {
		return ErrInvalidResetToken
	}
	return s.ChangePassword(ctx, t.UserID, newPassword)
}

type UpdateProfileInput struct {
	Neighborhood string
	Phone        string
	Address      string
}

// UpdateProfile mutates the free-form profile attributes. Identity fields
// (id, username, email) are immutable here.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if in.Neighborhood != "" {
		u.Neighborhood = in.Neighborhood
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if in.Address != "" {
		u.Address = in.Address
	}
	if err := s.Repo.UpdateProfile(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetProfile returns the user behind a verified token.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
