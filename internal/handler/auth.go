package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/erenasiroglu/persona-backend/internal/cache"
	"github.com/erenasiroglu/persona-backend/internal/model"
	"github.com/erenasiroglu/persona-backend/internal/repository"
	"github.com/erenasiroglu/persona-backend/internal/service"
)

// dbTimeout bounds the database work of a single request.
const dbTimeout = 5 * time.Second

// UserDirectory is the point-lookup the profile endpoint needs.
// *repository.UserRepo satisfies it.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Creds    *service.CredentialService
	Resets   *service.ResetService
	Users    UserDirectory
	Profiles *cache.UserCache
	Log      *zap.Logger
}

func NewAuthHandler(creds *service.CredentialService, resets *service.ResetService, users UserDirectory, profiles *cache.UserCache, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Creds: creds, Resets: resets, Users: users, Profiles: profiles, Log: log}
}

// ----- DTOs -----

type registerReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type forgotReq struct {
	Email string `json:"email"`
}
type resetReq struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type authResp struct {
	User  service.PublicUser `json:"user"`
	Token tokenPart          `json:"token"`
}

// Register: create the account and return the profile with a bearer token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res, err := h.Creds.Register(ctx, service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, authResp{
		User:  res.User,
		Token: tokenPart{Token: res.Token.Token, Expires: res.Token.Expires},
	})
}

// Login: verify credentials and return a fresh bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res, err := h.Creds.Login(ctx, req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, authResp{
		User:  res.User,
		Token: tokenPart{Token: res.Token.Token, Expires: res.Token.Expires},
	})
}

// ForgotPassword: issue a reset token and email the link. The response
// never carries the token.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotReq
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}

	// The email dispatch rides on the request context, not the DB
	// timeout: the SMTP round trip may legitimately outlast it.
	if err := h.Resets.RequestReset(c.Request().Context(), req.Email); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password reset link sent to your email"})
}

// ResetPassword: consume the token and rotate the credential.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetReq
	if err := c.Bind(&req); err != nil || req.Token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	uid, err := h.Resets.CompleteReset(ctx, req.Token, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	h.Profiles.Invalidate(ctx, uid)
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated successfully"})
}

// Me: return the authenticated user's public profile, served from the
// profile cache when warm.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if u, hit := h.Profiles.Get(ctx, uid); hit {
		return c.JSON(http.StatusOK, u)
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		return h.fail(c, err)
	}
	pub := service.PublicUser{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
	h.Profiles.Set(ctx, pub)
	return c.JSON(http.StatusOK, pub)
}

// fail maps service error kinds onto status codes and short messages.
// Unknown errors are logged with full detail server-side and surface
// as a generic 500.
func (h *AuthHandler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already registered"})
	case errors.Is(err, service.ErrInvalidCredentials):
		// 401 for both unknown email and wrong password.
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	case errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	case errors.Is(err, service.ErrInvalidResetToken):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or expired reset token"})
	default:
		h.Log.Error("unexpected failure",
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "something went wrong"})
	}
}
