package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/museumguide/backend/internal/models"
	"github.com/museumguide/backend/internal/services"
)

// AdminService is the interface that wraps the admin gate check.
type AdminService interface {
	// Authenticate checks the email against the allow-list and issues a
	// session on success, or services.ErrUnauthorized.
	Authenticate(ctx context.Context, email string) (*models.AdminSession, error)
}

// AdminHandler handles administrator authentication requests
type AdminHandler struct {
	BaseHandler
	service AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(svc AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers the admin gate route.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Post("/admin/auth", h.Authenticate)
}

// Authenticate handles POST /admin/auth
// @Summary Check administrator email
// @Description Check an email against the registered-administrators list. On success a session token is returned for write endpoints.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.AdminAuthRequest true "Administrator email"
// @Success 200 {object} models.AdminAuthResponse "Gate result"
// @Failure 400 {object} map[string]string "Missing email"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/auth [post]
func (h *AdminHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req models.AdminAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		h.RespondError(w, http.StatusBadRequest, "email is required")
		return
	}

	session, err := h.service.Authenticate(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			// Unknown emails are a normal gate outcome, not an error status.
			h.RespondJSON(w, http.StatusOK, models.AdminAuthResponse{
				Success: false,
				Message: "Email not found",
			})
			return
		}
		h.Logger.Error("failed to check administrator email", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, models.AdminAuthResponse{
		Success: true,
		Email:   session.Email,
		Token:   session.Token,
	})
}
