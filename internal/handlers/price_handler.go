package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/crud-admin/internal/price"
)

// maxMaskValue caps the length of a value sent to the mask endpoint
const maxMaskValue = 64

// PriceHandler backs the price input mask
type PriceHandler struct {
	formatter *price.Formatter
	logger    *slog.Logger
}

// NewPriceHandler creates a new price handler
func NewPriceHandler(formatter *price.Formatter, logger *slog.Logger) *PriceHandler {
	return &PriceHandler{
		formatter: formatter,
		logger:    logger,
	}
}

// MaskResponse is returned by Mask
type MaskResponse struct {
	Formatted string `json:"formatted"`
	Raw       string `json:"raw"`
}

// Mask handles GET /api/price/mask?value=
// Returns the masked field value and the raw digits it stands for.
func (h *PriceHandler) Mask(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")
	if len(value) > maxMaskValue {
		h.logger.Warn("price mask value too long", "length", len(value))
		WriteError(w, http.StatusBadRequest, "value is too long", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, MaskResponse{
		Formatted: h.formatter.Mask(value),
		Raw:       price.Unformat(value),
	}, h.logger)
}
