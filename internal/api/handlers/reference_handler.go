package handlers

import (
	"net/http"

	"github.com/recalibr/recalibr/backend/internal/domain/entities"
	"github.com/recalibr/recalibr/backend/internal/domain/providers"
)

// ReferenceHandler exposes the loaded read-only reference tables so rule
// changes can be audited without reading the deployed files.
type ReferenceHandler struct {
	refData providers.ReferenceDataProvider
}

// NewReferenceHandler creates a new reference data handler
func NewReferenceHandler(refData providers.ReferenceDataProvider) *ReferenceHandler {
	return &ReferenceHandler{refData: refData}
}

// ListSystems handles GET /api/reference/systems
func (h *ReferenceHandler) ListSystems(w http.ResponseWriter, r *http.Request) {
	aliases := h.refData.AliasSets()
	systems := make([]map[string]interface{}, 0, len(aliases))
	for _, system := range entities.ValidSystems() {
		systems = append(systems, map[string]interface{}{
			"system":  system,
			"aliases": aliases[system],
		})
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"systems": systems,
		"count":   len(systems),
	})
}

// ListTriggers handles GET /api/reference/triggers
func (h *ReferenceHandler) ListTriggers(w http.ResponseWriter, r *http.Request) {
	triggers := h.refData.AllTriggers()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"triggers": triggers,
		"count":    len(triggers),
	})
}
