// File: internal/auth/handler.go
package auth

import (
	"errors"
	"net/http"

	"kudos_web/internal/common"
	"kudos_web/internal/user"
	"kudos_web/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	loginTemplate  = "login.html"
	homeAfterLogin = "/"
)

// Handler serves the login, registration and logout routes.
type Handler struct {
	users     user.Service
	sessions  *SessionManager
	validator *validation.Validator
	logger    *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(users user.Service, sessions *SessionManager, validator *validation.Validator, logger *zap.Logger) *Handler {
	return &Handler{
		users:     users,
		sessions:  sessions,
		validator: validator,
		logger:    logger,
	}
}

// RegisterRoutes sets up the routes for authentication operations.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/login", h.loginPage)
	router.POST("/login", h.submit)
	router.POST("/logout", h.logout)
}

func (h *Handler) loginPage(c *gin.Context) {
	if id, ok := h.sessions.ReadUserID(c.Request); ok {
		if _, err := h.users.GetUserByID(c.Request.Context(), id); err == nil {
			common.RedirectTo(c, homeAfterLogin)
			return
		}
		// Session of a user that no longer exists.
		h.sessions.ClearCookie(c)
	}
	action := actionLogin
	if c.Query("register") != "" {
		action = actionRegister
	}
	h.render(c, http.StatusOK, LoginForm{Action: action, RedirectTo: c.Query("redirectTo")}, nil, "")
}

func (h *Handler) submit(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.log(c).Warn("Login: unreadable form", zap.Error(err))
		h.render(c, http.StatusBadRequest, form, nil, "Invalid Form Data")
		return
	}

	if form.Action != actionLogin && form.Action != actionRegister {
		h.render(c, http.StatusBadRequest, form, nil, "Invalid Form Data")
		return
	}

	errs := validation.Errors{}
	errs.Add("email", h.validator.Email(form.Email))
	errs.Add("password", h.validator.Password(form.Password))
	if form.Action == actionRegister {
		errs.Add("firstName", h.validator.Name(form.FirstName))
		errs.Add("lastName", h.validator.Name(form.LastName))
	}
	if errs.HasAny() {
		h.render(c, http.StatusBadRequest, form, errs, "")
		return
	}

	ctx := c.Request.Context()
	var (
		u   *user.User
		err error
	)
	if form.Action == actionLogin {
		u, err = h.users.Login(ctx, form.Email, form.Password)
	} else {
		u, err = h.users.Register(ctx, user.RegisterInput{
			Email:     form.Email,
			Password:  form.Password,
			FirstName: form.FirstName,
			LastName:  form.LastName,
		})
	}
	if err != nil {
		if errors.Is(err, user.ErrInvalidLogin) || errors.Is(err, user.ErrUserExists) {
			apiErr, _ := common.IsAPIError(err)
			h.render(c, http.StatusBadRequest, form, nil, apiErr.Message)
			return
		}
		h.log(c).Error("Login: unexpected failure", zap.String("action", form.Action), zap.Error(err))
		h.render(c, http.StatusInternalServerError, form, nil, "Something went wrong trying to sign you in")
		return
	}

	target := common.SafeRedirectPath(form.RedirectTo, homeAfterLogin)
	if err := h.sessions.Create(c, u.ID, target); err != nil {
		h.render(c, http.StatusInternalServerError, form, nil, "Something went wrong trying to sign you in")
	}
}

func (h *Handler) logout(c *gin.Context) {
	h.sessions.Destroy(c, loginPath)
}

func (h *Handler) render(c *gin.Context, status int, form LoginForm, errs validation.Errors, formError string) {
	action := form.Action
	if action != actionRegister {
		action = actionLogin
	}
	c.HTML(status, loginTemplate, gin.H{
		"Title":      "Login",
		"Action":     action,
		"RedirectTo": form.RedirectTo,
		"Fields": loginFields{
			Email:     form.Email,
			FirstName: form.FirstName,
			LastName:  form.LastName,
		},
		"Errors":    errs,
		"FormError": formError,
	})
}

// log returns the request-scoped logger so entries carry the request id.
func (h *Handler) log(c *gin.Context) *zap.Logger {
	return common.GetLoggerFromContext(c, h.logger)
}
