package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-credentials/config"
	userapp "github.com/oksasatya/go-ddd-credentials/internal/application"
	"github.com/oksasatya/go-ddd-credentials/internal/domain/entity"
	"github.com/oksasatya/go-ddd-credentials/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-credentials/pkg/helpers"
	"github.com/oksasatya/go-ddd-credentials/pkg/mailer"
	tpl "github.com/oksasatya/go-ddd-credentials/pkg/mailer/templates"
	"github.com/oksasatya/go-ddd-credentials/pkg/response"
	"github.com/oksasatya/go-ddd-credentials/pkg/validation"
)

const publishTimeout = 5 * time.Second

// Publisher enqueues email jobs. helpers.RabbitPublisher implements it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
	Cfg    *config.Config
	// Pub is nil when email sending is disabled.
	Pub Publisher
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger, cfg *config.Config, pub Publisher) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cfg: cfg, Pub: pub}
}

type registerRequest struct {
	LoginID  string `json:"loginId" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Birthday string `json:"birthday" binding:"required,ymd"`
	Email    string `json:"email" binding:"required"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type profileResponse struct {
	LoginID  string `json:"loginId"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
	Email    string `json:"email"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	birthday, err := entity.ParseBirthDate(req.Birthday)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.Svc.Register(c.Request.Context(), req.LoginID, req.Name, req.Password, birthday.Time(), req.Email); err != nil {
		h.writeError(c, err)
		return
	}

	loginID := strings.TrimSpace(req.LoginID)
	email := strings.TrimSpace(req.Email)
	h.enqueue(c, email, tpl.Welcome, tpl.NewWelcomeData(h.Cfg, strings.TrimSpace(req.Name), loginID, email))
	response.Success(c, http.StatusCreated, gin.H{"loginId": loginID}, "user registered", nil)
}

func (h *UserHandler) Me(c *gin.Context) {
	identifier, ok := middleware.IdentifierFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	view, err := h.Svc.QueryProfile(c.Request.Context(), identifier)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profileResponse{
		LoginID:  view.LoginID,
		Name:     view.MaskedName,
		Birthday: view.BirthDate.Format(entity.BirthDateCompactLayout),
		Email:    view.Email,
	}, "profile", nil)
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	identifier, ok := middleware.IdentifierFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	ctx := c.Request.Context()
	if err := h.Svc.UpdatePassword(ctx, identifier, req.CurrentPassword, req.NewPassword); err != nil {
		h.writeError(c, err)
		return
	}

	if h.Pub != nil {
		if view, err := h.Svc.QueryProfile(ctx, identifier); err == nil {
			h.enqueue(c, view.Email, tpl.PasswordChanged, tpl.NewPasswordChangedData(
				h.Cfg,
				view.LoginID,
				view.Email,
				tpl.WithIP(middleware.RealIPFrom(c)),
				tpl.WithUserAgent(c.GetHeader("User-Agent")),
				tpl.WithTime(time.Now()),
			))
		}
	}
	response.Success[any](c, http.StatusOK, nil, "password updated", nil)
}

// enqueue publishes a templated email. Failures are logged and never reach the caller.
func (h *UserHandler) enqueue(c *gin.Context, to, template string, data map[string]any) {
	if h.Pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), publishTimeout)
	defer cancel()

	job := mailer.EmailJob{To: to, Template: template, Data: data}
	if err := h.Pub.PublishJSON(ctx, job); err != nil {
		h.Logger.WithError(err).WithFields(logrus.Fields{
			"template":   template,
			"request_id": c.GetString("request_id"),
		}).Warn("failed to publish email job")
	}
}

func (h *UserHandler) writeError(c *gin.Context, err error) {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusBadRequest, "validation failed", map[string]string{verr.Field: verr.Reason})
	case errors.Is(err, userapp.ErrDuplicateIdentity):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, userapp.ErrAuthenticationFailed):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, userapp.ErrAccountLocked):
		response.Error[any](c, http.StatusLocked, err.Error(), nil)
	case errors.Is(err, userapp.ErrIdentityNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, userapp.ErrCurrentPasswordMismatch), errors.Is(err, userapp.ErrPasswordUnchanged):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	default:
		helpers.LogError(h.Logger, "request failed", err, logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		})
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}
