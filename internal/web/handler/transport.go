package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/buitransport/internal/gateway"
	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/web/middleware"
	"github.com/mcoot/buitransport/internal/web/templates/pages"
)

// TransportHandler serves the public route listing
type TransportHandler struct {
	logger *slog.Logger
}

// NewTransportHandler creates a new TransportHandler
func NewTransportHandler(logger *slog.Logger) *TransportHandler {
	return &TransportHandler{logger: logger}
}

// List renders all routes, filtered by the q and destination query parameters
func (h *TransportHandler) List(w http.ResponseWriter, r *http.Request) {
	data := pages.TransportListData{
		Search:      strings.TrimSpace(r.URL.Query().Get("q")),
		Destination: strings.TrimSpace(r.URL.Query().Get("destination")),
	}

	options, err := middleware.GetSession(r.Context()).Client().ListTransportOptions(r.Context())
	if err != nil {
		h.logger.Warn("failed to list transport options", slog.String("error", err.Error()))
		data.Error = gateway.UserMessage(err, "Failed to load transport options")
	} else {
		data.Options = model.FilterTransportOptions(options, data.Search, data.Destination)
	}

	// Built after the call: a rejected credential logs the session out
	data.PageData = pageData(r, "Transport Options")
	render(w, r, h.logger, http.StatusOK, pages.TransportList(data))
}
