package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/buitransport/internal/gateway"
	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/web/middleware"
	"github.com/mcoot/buitransport/internal/web/templates/pages"
)

// ProfileHandler shows and edits the role-specific profile
type ProfileHandler struct {
	logger *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{logger: logger}
}

// View renders the profile page. The account and the profile are fetched together.
func (h *ProfileHandler) View(w http.ResponseWriter, r *http.Request) {
	api := middleware.GetSession(r.Context()).Client()

	var (
		identity *model.Identity
		profile  model.Profile
	)
	err := fanOut(r.Context(),
		func(ctx context.Context) (err error) {
			identity, err = api.CurrentUser(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			profile, err = api.Profile(ctx)
			return err
		},
	)

	data := pages.ProfileData{}
	if err != nil {
		h.logger.Warn("failed to load profile", slog.String("error", err.Error()))
		data.Error = gateway.UserMessage(err, "Failed to load profile")
	} else {
		data.Identity = *identity
		data.Profile = profile
		data.Fields = model.EditableProfileFields(identity.Role)
	}

	data.PageData = pageData(r, "My Profile")
	render(w, r, h.logger, http.StatusOK, pages.Profile(data))
}

// Update applies the submitted profile fields
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	user := middleware.GetUser(r.Context())
	changes := model.Profile{}
	for _, f := range model.EditableProfileFields(user.Role) {
		if values, ok := r.PostForm["field_"+f.Key]; ok && len(values) > 0 {
			changes[f.Key] = strings.TrimSpace(values[0])
		}
	}

	if _, err := middleware.GetSession(r.Context()).Client().UpdateProfile(r.Context(), changes); err != nil {
		h.logger.Info("profile update failed", slog.String("error", err.Error()))
		middleware.SetFlash(w, "error", gateway.UserMessage(err, "Failed to update profile"))
	} else {
		middleware.SetFlash(w, "success", "Profile updated successfully")
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
