package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"courtside/internal/availability/service"
	httputil "courtside/pkg/http"
	"courtside/pkg/logger"
	"courtside/pkg/model"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

// GetSlots answers GET /api/v1/sections/:id/slots?date=YYYY-MM-DD with the
// bookable slots for that section and day.
func (h *AvailabilityHandler) GetSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sectionID := ps.ByName("id")
	date := r.URL.Query().Get("date")
	if date == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'date' query parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "GetSlots", "operation", "WriteJSON", "error", err)
		}
		return
	}

	availability, err := h.service.GetAvailableSlots(r.Context(), sectionID, date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetSlots", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, availability); err != nil {
		h.log.Error("failed to write success response", "handler", "GetSlots", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) CreateSetting(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var setting model.SlotSetting
	if err := json.NewDecoder(r.Body).Decode(&setting); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateSetting", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.CreateSetting(r.Context(), &setting); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateSetting", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, setting); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateSetting", "operation", "WriteCreated", "error", err)
	}
}

func (h *AvailabilityHandler) GetSettingByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	setting, err := h.service.GetSettingByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetSettingByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, setting); err != nil {
		h.log.Error("failed to write success response", "handler", "GetSettingByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) ListSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sectionID := r.URL.Query().Get("section_id")
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListSettings", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	settings, count, err := h.service.ListSettingsBySection(r.Context(), sectionID, limit, int(offset))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListSettings", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, settings, count, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListSettings", "operation", "WritePaginated", "error", err)
	}
}

func (h *AvailabilityHandler) UpdateSetting(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.SlotSettingUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateSetting", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.UpdateSetting(r.Context(), ps.ByName("id"), &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateSetting", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

// DeactivateSetting backs the DELETE route. Settings are soft-deactivated
// rather than removed so booked slot IDs keep resolving.
func (h *AvailabilityHandler) DeactivateSetting(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeactivateSetting(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DeactivateSetting", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AvailabilityHandler) CreateBlockedSetting(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var blocked model.BlockedSetting
	if err := json.NewDecoder(r.Body).Decode(&blocked); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateBlockedSetting", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.CreateBlockedSetting(r.Context(), &blocked); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateBlockedSetting", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, blocked); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateBlockedSetting", "operation", "WriteCreated", "error", err)
	}
}

func (h *AvailabilityHandler) GetBlockedSettingByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	blocked, err := h.service.GetBlockedSettingByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetBlockedSettingByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, blocked); err != nil {
		h.log.Error("failed to write success response", "handler", "GetBlockedSettingByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) ListBlockedSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sectionID := r.URL.Query().Get("section_id")
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListBlockedSettings", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	blocked, count, err := h.service.ListBlockedSettingsBySection(r.Context(), sectionID, limit, int(offset))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListBlockedSettings", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, blocked, count, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListBlockedSettings", "operation", "WritePaginated", "error", err)
	}
}

func (h *AvailabilityHandler) UpdateBlockedSetting(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.BlockedSettingUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateBlockedSetting", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.UpdateBlockedSetting(r.Context(), ps.ByName("id"), &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateBlockedSetting", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AvailabilityHandler) DeactivateBlockedSetting(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeactivateBlockedSetting(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DeactivateBlockedSetting", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/sections/:id/slots", h.GetSlots)

	router.POST("/api/v1/slot-settings", h.CreateSetting)
	router.GET("/api/v1/slot-settings", h.ListSettings)
	router.GET("/api/v1/slot-settings/id/:id", h.GetSettingByID)
	router.PATCH("/api/v1/slot-settings/id/:id", h.UpdateSetting)
	router.DELETE("/api/v1/slot-settings/id/:id", h.DeactivateSetting)

	router.POST("/api/v1/blocked-settings", h.CreateBlockedSetting)
	router.GET("/api/v1/blocked-settings", h.ListBlockedSettings)
	router.GET("/api/v1/blocked-settings/id/:id", h.GetBlockedSettingByID)
	router.PATCH("/api/v1/blocked-settings/id/:id", h.UpdateBlockedSetting)
	router.DELETE("/api/v1/blocked-settings/id/:id", h.DeactivateBlockedSetting)
}
