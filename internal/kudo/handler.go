// File: internal/kudo/handler.go
package kudo

import (
	"errors"
	"net/http"

	"kudos_web/internal/common"
	"kudos_web/internal/user"
	"kudos_web/internal/validation"
	"kudos_web/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	homeTemplate    = "home.html"
	composeTemplate = "kudo.html"
	homePath        = "/home"
)

// composeForm is the body of POST /home/kudo/:userId.
type composeForm struct {
	Message         string `form:"message"`
	BackgroundColor string `form:"backgroundColor"`
	TextColor       string `form:"textColor"`
	Emoji           string `form:"emoji"`
}

// Handler serves the home feed and the compose page.
type Handler struct {
	kudos  Service
	users  user.Service
	logger *zap.Logger
}

// NewHandler creates a new kudo handler.
func NewHandler(kudos Service, users user.Service, logger *zap.Logger) *Handler {
	return &Handler{kudos: kudos, users: users, logger: logger}
}

// RegisterRoutes mounts the handlers on a group that already requires a user.
func (h *Handler) RegisterRoutes(home gin.IRouter) {
	home.GET("", h.home)
	home.GET("/kudo/:userId", h.composePage)
	home.POST("/kudo/:userId", h.send)
}

func (h *Handler) home(c *gin.Context) {
	me := user.CurrentUser(c)
	ctx := c.Request.Context()
	q := NewFeedQuery(c.Query("sort"), c.Query("filter"))

	feed, err := h.kudos.Feed(ctx, me.ID, q)
	if err != nil {
		h.log(c).Error("Failed to load feed", zap.Error(err), zap.String("userID", me.ID.String()))
		web.RenderError(c, err)
		return
	}
	recent, err := h.kudos.Recent(ctx)
	if err != nil {
		h.log(c).Error("Failed to load recent kudos", zap.Error(err))
		web.RenderError(c, err)
		return
	}
	others, err := h.users.GetOtherUsers(ctx, me.ID)
	if err != nil {
		h.log(c).Error("Failed to load users", zap.Error(err))
		web.RenderError(c, err)
		return
	}

	c.HTML(http.StatusOK, homeTemplate, gin.H{
		"Title":  "Home",
		"User":   me,
		"Kudos":  feed,
		"Recent": recent,
		"Users":  others,
		"Sort":   q.Sort,
		"Filter": q.Filter,
	})
}

func (h *Handler) composePage(c *gin.Context) {
	recipient, ok := h.loadRecipient(c)
	if !ok {
		return
	}
	style := DefaultStyle()
	h.renderCompose(c, http.StatusOK, recipient, composeForm{
		BackgroundColor: string(style.BackgroundColor),
		TextColor:       string(style.TextColor),
		Emoji:           string(style.Emoji),
	}, nil, "")
}

func (h *Handler) send(c *gin.Context) {
	recipient, ok := h.loadRecipient(c)
	if !ok {
		return
	}
	me := user.CurrentUser(c)

	var form composeForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderCompose(c, http.StatusBadRequest, recipient, form, nil, "Invalid Form Data")
		return
	}

	_, err := h.kudos.Send(c.Request.Context(), me.ID, recipient.ID, SendInput(form))
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, homePath)
	case errors.Is(err, ErrEmptyMessage):
		h.renderCompose(c, http.StatusBadRequest, recipient, form, validation.Errors{"message": ErrEmptyMessage.Message}, "")
	case errors.Is(err, ErrInvalidStyle):
		h.renderCompose(c, http.StatusBadRequest, recipient, form, validation.Errors{"style": ErrInvalidStyle.Message}, "")
	case errors.Is(err, ErrSelfKudo):
		h.renderCompose(c, http.StatusBadRequest, recipient, form, nil, ErrSelfKudo.Message)
	case errors.Is(err, ErrRecipientNotFound):
		c.Redirect(http.StatusSeeOther, homePath)
	default:
		h.log(c).Error("Failed to send kudo", zap.Error(err))
		web.RenderError(c, err)
	}
}

// loadRecipient resolves :userId. Unknown or malformed ids send the user back home.
func (h *Handler) loadRecipient(c *gin.Context) (*user.User, bool) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.Redirect(http.StatusFound, homePath)
		c.Abort()
		return nil, false
	}
	recipient, err := h.users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			h.log(c).Error("Failed to load recipient", zap.Error(err), zap.String("recipientID", id.String()))
			web.RenderError(c, err)
			return nil, false
		}
		c.Redirect(http.StatusFound, homePath)
		c.Abort()
		return nil, false
	}
	return recipient, true
}

func (h *Handler) renderCompose(c *gin.Context, status int, recipient *user.User, form composeForm, errs validation.Errors, formError string) {
	c.HTML(status, composeTemplate, gin.H{
		"Title":     "Give Kudos",
		"User":      user.CurrentUser(c),
		"Recipient": recipient,
		"Fields":    form,
		"Colors":    Colors,
		"Emojis":    Emojis,
		"Errors":    errs,
		"FormError": formError,
	})
}

// log returns the request-scoped logger so entries carry the request id.
func (h *Handler) log(c *gin.Context) *zap.Logger {
	return common.GetLoggerFromContext(c, h.logger)
}
