package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foody-app/foody-api/internal/apperr"
	"github.com/foody-app/foody-api/internal/auth"
	"github.com/foody-app/foody-api/internal/mail"
)

var (
	ErrBadCredentials = apperr.Unauthorized("invalid email or password")
	ErrInactive       = apperr.Unauthorized("account is deactivated")
	ErrWrongPassword  = apperr.Validation("current password is incorrect")
	ErrResetToken     = apperr.Validation("reset token is invalid or has expired")
	ErrDeleteSelf     = apperr.Validation("you cannot delete your own account")
)

const resetTTL = 15 * time.Minute

type Service struct {
	repo        Repository
	tokens      *auth.Tokens
	mailer      mail.Mailer
	frontendURL string
	now         func() time.Time
}

func NewService(repo Repository, tokens *auth.Tokens, mailer mail.Mailer, frontendURL string) *Service {
	return &Service{repo: repo, tokens: tokens, mailer: mailer, frontendURL: strings.TrimRight(frontendURL, "/"), now: time.Now}
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func (s *Service) issue(u *User) (string, error) {
	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Register creates a customer account and returns it with a session token.
func (s *Service) Register(ctx context.Context, in RegisterRequest) (*User, string, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	u := &User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		Role:         auth.RoleCustomer,
		Phone:        strings.TrimSpace(in.Phone),
		Active:       true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, "", err
	}
	token, err := s.issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) Login(ctx context.Context, in LoginRequest) (*User, string, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(in.Email))
	if errors.Is(err, ErrNotFound) {
		return nil, "", ErrBadCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !CheckPassword(u.PasswordHash, in.Password) {
		return nil, "", ErrBadCredentials
	}
	if !u.Active {
		return nil, "", ErrInactive
	}
	token, err := s.issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Identify implements httpx.Identity.
func (s *Service) Identify(ctx context.Context, userID string) (auth.Role, bool, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", false, err
	}
	return u.Role, u.Active, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		u.Phone = phone
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) SetAvatar(ctx context.Context, id, path string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Avatar = path
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, id string, in ChangePasswordRequest) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CheckPassword(u.PasswordHash, in.CurrentPassword) {
		return ErrWrongPassword
	}
	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash
	return s.repo.Update(ctx, u)
}

// ForgotPassword stores a hashed reset token and mails the raw token as a link.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	raw, hash, err := newResetToken()
	if err != nil {
		return fmt.Errorf("reset token: %w", err)
	}
	exp := s.now().Add(resetTTL)
	u.ResetTokenHash = hash
	u.ResetExpiresAt = &exp
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, raw)
	body := fmt.Sprintf(`<p>Hello %s,</p><p>Reset your Foody password within 15 minutes:</p><p><a href="%s">%s</a></p>`,
		u.Name, link, link)
	if err := s.mailer.Send(ctx, u.Email, "Foody password reset", body); err != nil {
		u.ResetTokenHash, u.ResetExpiresAt = "", nil
		_ = s.repo.Update(ctx, u)
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, rawToken string, in ResetPasswordRequest) (*User, string, error) {
	u, err := s.repo.GetByResetToken(ctx, hashResetToken(rawToken))
	if errors.Is(err, ErrNotFound) {
		return nil, "", ErrResetToken
	}
	if err != nil {
		return nil, "", err
	}
	if u.ResetExpiresAt == nil || !u.ResetExpiresAt.After(s.now()) {
		return nil, "", ErrResetToken
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash
	u.ResetTokenHash, u.ResetExpiresAt = "", nil
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, "", err
	}
	token, err := s.issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) List(ctx context.Context, q Query) ([]User, int64, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) AdminUpdate(ctx context.Context, id string, in AdminUpdateRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Role != nil {
		u.Role = auth.Role(*in.Role)
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return ErrDeleteSelf
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
