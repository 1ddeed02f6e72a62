package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foody-app/foody-api/internal/httpx"
	"github.com/foody-app/foody-api/internal/upload"
	"github.com/foody-app/foody-api/internal/user"
)

func setTokenCookie(c *gin.Context, a *app, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(httpx.TokenCookie, token, maxAge, "/", "", a.cfg.CookieSecure, true)
}

// @Summary  Register a customer account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body user.RegisterRequest true "account"
// @Success  201 {object} map[string]any
// @Router   /api/auth/register [post]
func registerHandler(a *app) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.RegisterRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		u, token, err := a.users.Register(c.Request.Context(), in)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		setTokenCookie(c, a, token, int(a.tokens.TTL().Seconds()))
		httpx.Message(c, http.StatusCreated, "registration successful", gin.H{"user": u, "token": token})
	}
}

// @Summary  Sign in
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body user.LoginRequest true "credentials"
// @Success  200 {object} map[string]any
// @Failure  401 {object} map[string]any
// @Router   /api/auth/login [post]
func loginHandler(a *app) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.LoginRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		u, token, err := a.users.Login(c.Request.Context(), in)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		setTokenCookie(c, a, token, int(a.tokens.TTL().Seconds()))
		httpx.Message(c, http.StatusOK, "login successful", gin.H{"user": u, "token": token})
	}
}

// @Summary  Sign out
// @Tags     auth
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /api/auth/logout [post]
func logoutHandler(a *app) gin.HandlerFunc {
	return func(c *gin.Context) {
		setTokenCookie(c, a, "", -1)
		httpx.Message(c, http.StatusOK, "logged out", nil)
	}
}

// @Summary  Current user
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} map[string]any
// @Failure  401 {object} map[string]any
// @Router   /api/auth/me [get]
func meHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := svc.Get(c.Request.Context(), httpx.UserID(c))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"user": u})
	}
}

// @Summary  Update own profile
// @Tags     auth
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body user.UpdateProfileRequest true "profile"
// @Success  200 {object} map[string]any
// @Router   /api/auth/profile [put]
func updateProfileHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.UpdateProfileRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		u, err := svc.UpdateProfile(c.Request.Context(), httpx.UserID(c), in)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "profile updated", gin.H{"user": u})
	}
}

// @Summary  Change own password
// @Tags     auth
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body user.ChangePasswordRequest true "passwords"
// @Success  200 {object} map[string]any
// @Failure  401 {object} map[string]any
// @Router   /api/auth/password [put]
func changePasswordHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.ChangePasswordRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		if err := svc.ChangePassword(c.Request.Context(), httpx.UserID(c), in); err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "password updated", nil)
	}
}

// @Summary  Upload avatar image
// @Tags     auth
// @Accept   mpfd
// @Produce  json
// @Security BearerAuth
// @Param    avatar formData file true "image"
// @Success  200 {object} map[string]any
// @Router   /api/auth/avatar [post]
func avatarHandler(svc *user.Service, uploads *upload.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		path, err := uploads.FromForm(c, "avatar")
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		if path == "" {
			httpx.Fail(c, errNoImage)
			return
		}
		u, err := svc.SetAvatar(c.Request.Context(), httpx.UserID(c), path)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "avatar updated", gin.H{"user": u})
	}
}

// @Summary  Email a password reset link
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body user.ForgotPasswordRequest true "account email"
// @Success  200 {object} map[string]any
// @Router   /api/auth/forgot-password [post]
func forgotPasswordHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.ForgotPasswordRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		if err := svc.ForgotPassword(c.Request.Context(), in.Email); err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "password reset email sent", nil)
	}
}

// @Summary  Reset password with an emailed token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    token path string true "reset token"
// @Param    body body user.ResetPasswordRequest true "new password"
// @Success  200 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Router   /api/auth/reset-password/{token} [post]
func resetPasswordHandler(a *app) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.ResetPasswordRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		u, token, err := a.users.ResetPassword(c.Request.Context(), c.Param("token"), in)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		setTokenCookie(c, a, token, int(a.tokens.TTL().Seconds()))
		httpx.Message(c, http.StatusOK, "password reset successful", gin.H{"user": u, "token": token})
	}
}

// @Summary  List users (admin)
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Param    search query string false "name or email contains"
// @Param    role   query string false "role"
// @Param    page   query int    false "page"
// @Param    limit  query int    false "page size"
// @Success  200 {object} map[string]any
// @Router   /api/users [get]
func listUsersHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := httpx.PageFrom(c)
		users, total, err := svc.List(c.Request.Context(), user.Query{
			Search: c.Query("search"),
			Role:   c.Query("role"),
			Limit:  p.Limit,
			Offset: p.Offset(),
		})
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"users": users, "pagination": httpx.NewPagination(p, total)})
	}
}

// @Summary  Get a user (admin)
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "user id"
// @Success  200 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /api/users/{id} [get]
func getUserHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"user": u})
	}
}

// @Summary  Update a user (admin)
// @Tags     users
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string true "user id"
// @Param    body body user.AdminUpdateRequest true "changes"
// @Success  200 {object} map[string]any
// @Router   /api/users/{id} [put]
func adminUpdateUserHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.AdminUpdateRequest
		if err := httpx.Bind(c, &in); err != nil {
			httpx.Fail(c, err)
			return
		}
		u, err := svc.AdminUpdate(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "user updated", gin.H{"user": u})
	}
}

// @Summary  Delete a user (admin)
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "user id"
// @Success  200 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Router   /api/users/{id} [delete]
func deleteUserHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), httpx.UserID(c), c.Param("id")); err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.Message(c, http.StatusOK, "user deleted", nil)
	}
}
