// File: internal/user/handler.go
package user

import (
	"net/http"

	"kudos_web/internal/common"
	"kudos_web/internal/validation"
	"kudos_web/internal/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const profileTemplate = "profile.html"

// SessionDestroyer ends the current session and redirects.
type SessionDestroyer interface {
	Destroy(c *gin.Context, redirectTo string)
}

// profileForm is the body of POST /home/profile.
type profileForm struct {
	Action     string `form:"_action"`
	FirstName  string `form:"firstName"`
	LastName   string `form:"lastName"`
	Department string `form:"department"`
}

// Handler struct holds dependencies for profile handlers.
type Handler struct {
	service   Service
	sessions  SessionDestroyer
	validator *validation.Validator
	logger    *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, sessions SessionDestroyer, validator *validation.Validator, logger *zap.Logger) *Handler {
	return &Handler{
		service:   service,
		sessions:  sessions,
		validator: validator,
		logger:    logger,
	}
}

// RegisterRoutes mounts the profile routes on a group that already requires a user.
func (h *Handler) RegisterRoutes(home gin.IRouter) {
	home.GET("/profile", h.profilePage)
	home.POST("/profile", h.submitProfile)
}

func (h *Handler) profilePage(c *gin.Context) {
	me := CurrentUser(c)
	h.render(c, http.StatusOK, me, profileForm{
		FirstName:  me.Profile.FirstName,
		LastName:   me.Profile.LastName,
		Department: me.Profile.DepartmentValue(),
	}, nil, "")
}

func (h *Handler) submitProfile(c *gin.Context) {
	me := CurrentUser(c)

	var form profileForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, me, form, nil, "Invalid Form Data")
		return
	}

	switch form.Action {
	case "save":
		errs := validation.Errors{}
		errs.Add("firstName", h.validator.Name(form.FirstName))
		errs.Add("lastName", h.validator.Name(form.LastName))
		errs.Add("department", h.validator.OneOf(form.Department, DepartmentValues(), validation.MsgInvalidDepartment))
		if errs.HasAny() {
			h.render(c, http.StatusBadRequest, me, form, errs, "")
			return
		}
		err := h.service.UpdateProfile(c.Request.Context(), me.ID, ProfileInput{
			FirstName:  form.FirstName,
			LastName:   form.LastName,
			Department: Department(form.Department),
		})
		if err != nil {
			h.log(c).Error("Failed to update profile", zap.Error(err), zap.String("userID", me.ID.String()))
			web.RenderError(c, err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/home")

	case "delete":
		if err := h.service.DeleteUser(c.Request.Context(), me.ID); err != nil {
			h.log(c).Error("Failed to delete user", zap.Error(err), zap.String("userID", me.ID.String()))
			web.RenderError(c, err)
			return
		}
		h.sessions.Destroy(c, "/login")

	default:
		h.render(c, http.StatusBadRequest, me, form, nil, "Invalid Form Data")
	}
}

func (h *Handler) render(c *gin.Context, status int, me *User, form profileForm, errs validation.Errors, formError string) {
	c.HTML(status, profileTemplate, gin.H{
		"Title":       "Profile",
		"User":        me,
		"Fields":      form,
		"Departments": Departments,
		"Errors":      errs,
		"FormError":   formError,
	})
}

// log returns the request-scoped logger so entries carry the request id.
func (h *Handler) log(c *gin.Context) *zap.Logger {
	return common.GetLoggerFromContext(c, h.logger)
}
