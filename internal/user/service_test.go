package user_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/foody-app/foody-api/internal/apperr"
	"github.com/foody-app/foody-api/internal/auth"
	"github.com/foody-app/foody-api/internal/memstore"
	"github.com/foody-app/foody-api/internal/user"
)

type captureMailer struct{ to, body string }

func (m *captureMailer) Send(_ context.Context, to, _ string, html string) error {
	m.to, m.body = to, html
	return nil
}

func newService() (*user.Service, *captureMailer, *auth.Tokens) {
	mailer := &captureMailer{}
	tokens := auth.NewTokens("test-secret", time.Hour)
	return user.NewService(memstore.New().Users(), tokens, mailer, "http://localhost:3000/"), mailer, tokens
}

func register(t *testing.T, svc *user.Service, email string) *user.User {
	t.Helper()
	u, _, err := svc.Register(context.Background(), user.RegisterRequest{Name: "Sita", Email: email, Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return u
}

func TestRegisterLogin(t *testing.T) {
	svc, _, tokens := newService()
	ctx := context.Background()

	u, token, err := svc.Register(ctx, user.RegisterRequest{Name: " Sita ", Email: " Sita@Example.com ", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "sita@example.com" || u.Name != "Sita" || u.Role != auth.RoleCustomer || !u.Active {
		t.Fatalf("user=%+v", u)
	}
	claims, err := tokens.Parse(token)
	if err != nil || claims.UserID != u.ID || claims.Role != auth.RoleCustomer {
		t.Fatalf("claims=%+v err=%v", claims, err)
	}

	if _, _, err := svc.Register(ctx, user.RegisterRequest{Name: "x", Email: "sita@example.com", Password: "secret123"}); !errors.Is(err, user.ErrAlreadyExist) {
		t.Fatalf("duplicate err=%v", err)
	}

	if _, _, err := svc.Login(ctx, user.LoginRequest{Email: "SITA@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("login err=%v", err)
	}
	if _, _, err := svc.Login(ctx, user.LoginRequest{Email: "sita@example.com", Password: "wrong"}); !errors.Is(err, user.ErrBadCredentials) {
		t.Fatalf("bad password err=%v", err)
	}
	if _, _, err := svc.Login(ctx, user.LoginRequest{Email: "nobody@example.com", Password: "x"}); !errors.Is(err, user.ErrBadCredentials) {
		t.Fatalf("unknown email err=%v", err)
	}
}

func TestLogin_Inactive(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	u := register(t, svc, "a@example.com")

	off := false
	if _, err := svc.AdminUpdate(ctx, u.ID, user.AdminUpdateRequest{Active: &off}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Login(ctx, user.LoginRequest{Email: "a@example.com", Password: "secret123"}); !errors.Is(err, user.ErrInactive) {
		t.Fatalf("err=%v", err)
	}
	role, active, err := svc.Identify(ctx, u.ID)
	if err != nil || active || role != auth.RoleCustomer {
		t.Fatalf("identify role=%s active=%v err=%v", role, active, err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	u := register(t, svc, "a@example.com")

	err := svc.ChangePassword(ctx, u.ID, user.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "another1"})
	if !errors.Is(err, user.ErrWrongPassword) {
		t.Fatalf("err=%v", err)
	}
	if err := svc.ChangePassword(ctx, u.ID, user.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "another1"}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Login(ctx, user.LoginRequest{Email: "a@example.com", Password: "another1"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestPasswordReset(t *testing.T) {
	svc, mailer, _ := newService()
	ctx := context.Background()
	register(t, svc, "a@example.com")

	if err := svc.ForgotPassword(ctx, "A@example.com"); err != nil {
		t.Fatalf("forgot: %v", err)
	}
	if mailer.to != "a@example.com" {
		t.Fatalf("mail to=%q", mailer.to)
	}
	m := regexp.MustCompile(`http://localhost:3000/reset-password/([0-9a-f]{40})`).FindStringSubmatch(mailer.body)
	if m == nil {
		t.Fatalf("no reset link in %q", mailer.body)
	}

	if _, _, err := svc.ResetPassword(ctx, "deadbeef", user.ResetPasswordRequest{Password: "newpass1"}); !errors.Is(err, user.ErrResetToken) {
		t.Fatalf("bogus token err=%v", err)
	}
	if _, token, err := svc.ResetPassword(ctx, m[1], user.ResetPasswordRequest{Password: "newpass1"}); err != nil || token == "" {
		t.Fatalf("reset err=%v", err)
	}
	// Tokens are single use.
	if _, _, err := svc.ResetPassword(ctx, m[1], user.ResetPasswordRequest{Password: "again123"}); !errors.Is(err, user.ErrResetToken) {
		t.Fatalf("reuse err=%v", err)
	}
	if _, _, err := svc.Login(ctx, user.LoginRequest{Email: "a@example.com", Password: "newpass1"}); err != nil {
		t.Fatalf("login after reset: %v", err)
	}

	if err := svc.ForgotPassword(ctx, "ghost@example.com"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("unknown email err=%v", err)
	}
}

func TestAdminListAndDelete(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	a := register(t, svc, "a@example.com")
	b := register(t, svc, "b@example.com")

	staff := "staff"
	if _, err := svc.AdminUpdate(ctx, b.ID, user.AdminUpdateRequest{Role: &staff}); err != nil {
		t.Fatal(err)
	}
	list, total, err := svc.List(ctx, user.Query{Role: "staff", Limit: 10})
	if err != nil || total != 1 || list[0].ID != b.ID {
		t.Fatalf("list=%+v total=%d err=%v", list, total, err)
	}
	list, total, _ = svc.List(ctx, user.Query{Search: "A@EXAMPLE", Limit: 10})
	if total != 1 || list[0].ID != a.ID {
		t.Fatalf("search list=%+v", list)
	}

	if err := svc.Delete(ctx, a.ID, a.ID); !errors.Is(err, user.ErrDeleteSelf) {
		t.Fatalf("self delete err=%v", err)
	}
	if err := svc.Delete(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("delete err=%v", err)
	}
	if err := svc.Delete(ctx, a.ID, b.ID); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("second delete err=%v", err)
	}
}
