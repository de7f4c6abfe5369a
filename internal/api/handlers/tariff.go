package handlers

import (
	"net/http"

	"energy-measures/internal/api/models"
	"energy-measures/internal/tariff"

	"github.com/gin-gonic/gin"
)

// TariffHandler lists the tariff library the selector offers
type TariffHandler struct {
	lib *tariff.Library
}

func NewTariffHandler(lib *tariff.Library) *TariffHandler {
	return &TariffHandler{lib: lib}
}

// ListTariffs handles GET /api/v1/tariffs
//
// The optional meter query narrows the listing to one meter.
func (h *TariffHandler) ListTariffs(c *gin.Context) {
	meter := c.Query("meter")

	resp := models.TariffListResponse{
		Source:  h.lib.Source(),
		Meters:  []string{},
		ByMeter: map[string][]models.TariffInfo{},
	}
	byMeter := h.lib.ByMeter()
	for _, m := range h.lib.Meters() {
		if meter != "" && m != meter {
			continue
		}
		resp.Meters = append(resp.Meters, m)
		for _, e := range byMeter[m] {
			resp.ByMeter[m] = append(resp.ByMeter[m], models.TariffInfo{
				File:       e.File,
				TariffName: e.TariffName,
				Meter:      e.Meter,
				Objects:    e.Objects,
			})
			resp.Count++
		}
	}

	if meter != "" && len(resp.Meters) == 0 {
		writeError(c, http.StatusNotFound, "UNKNOWN_METER", "no tariffs for meter "+meter)
		return
	}
	c.JSON(http.StatusOK, resp)
}
