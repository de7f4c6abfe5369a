package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"energy-measures/internal/api/models"
	"energy-measures/internal/idf"
	"energy-measures/internal/measure"
	"energy-measures/internal/model"
	"energy-measures/internal/translate"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MeasureHandler lists and runs registered measures
type MeasureHandler struct {
	registry *measure.Registry
	models   *ModelHandler
}

// NewMeasureHandler creates a new measure handler. models resolves the
// ?model= query of the arguments endpoint and may be nil.
func NewMeasureHandler(registry *measure.Registry, models *ModelHandler) *MeasureHandler {
	return &MeasureHandler{registry: registry, models: models}
}

// ListMeasures handles GET /api/v1/measures
func (h *MeasureHandler) ListMeasures(c *gin.Context) {
	c.JSON(http.StatusOK, models.MeasureListResponse{Measures: h.registry.List()})
}

// GetArguments handles GET /api/v1/measures/:name/arguments
func (h *MeasureHandler) GetArguments(c *gin.Context) {
	name := c.Param("name")
	target, err := h.registry.Target(name)
	if err != nil {
		writeError(c, http.StatusNotFound, "UNKNOWN_MEASURE", err.Error())
		return
	}

	var q models.ArgumentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	resp := models.ArgumentsResponse{Measure: name, Target: target}
	switch target {
	case measure.TargetModel:
		m := model.New("Building")
		if q.Model != "" {
			if h.models == nil {
				writeError(c, http.StatusNotFound, "MODEL_NOT_FOUND", "no model directory is configured")
				return
			}
			m, err = h.models.load(q.Model)
			if err != nil {
				writeError(c, http.StatusNotFound, "MODEL_NOT_FOUND", err.Error())
				return
			}
		}
		mm, _ := h.registry.Model(name)
		resp.Arguments = mm.Arguments(m)
	case measure.TargetWorkspace:
		wm, _ := h.registry.Workspace(name)
		resp.Arguments = wm.Arguments(idf.NewWorkspace())
	}
	c.JSON(http.StatusOK, resp)
}

// RunMeasure handles POST /api/v1/measures/:name/run
//
// A run that ends in Fail answers 422 with the full result, so clients see
// every registered error.
func (h *MeasureHandler) RunMeasure(c *gin.Context) {
	name := c.Param("name")
	target, err := h.registry.Target(name)
	if err != nil {
		writeError(c, http.StatusNotFound, "UNKNOWN_MEASURE", err.Error())
		return
	}

	var req models.RunMeasureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	var resp models.RunMeasureResponse
	switch target {
	case measure.TargetModel:
		m, err := decodeModel(req.Model)
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_MODEL", err.Error())
			return
		}
		mm, _ := h.registry.Model(name)
		resp.Result = mm.Run(c.Request.Context(), m, req.Arguments)
		f := m.ToFile()
		resp.Model = &f
	case measure.TargetWorkspace:
		ws, err := decodeWorkspace(req)
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_WORKSPACE", err.Error())
			return
		}
		wm, _ := h.registry.Workspace(name)
		resp.Result = wm.Run(c.Request.Context(), ws, req.Arguments)
		resp.IDF = ws.String()
	}

	logrus.WithFields(logrus.Fields{
		"measure": name,
		"outcome": resp.Result.Outcome,
	}).Info("measure run over HTTP")

	status := http.StatusOK
	if resp.Result.Failed() {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, resp)
}

func decodeModel(raw json.RawMessage) (*model.Model, error) {
	if len(raw) == 0 {
		return nil, errors.New("model is required")
	}
	var m model.Model
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	return &m, nil
}

// decodeWorkspace parses the IDF text of req, falling back to translating its
// model.
func decodeWorkspace(req models.RunMeasureRequest) (*idf.Workspace, error) {
	if req.IDF != "" {
		return idf.ParseString(req.IDF)
	}
	if len(req.Model) > 0 {
		m, err := decodeModel(req.Model)
		if err != nil {
			return nil, err
		}
		return translate.ToWorkspace(m), nil
	}
	return nil, errors.New("idf or model is required")
}
