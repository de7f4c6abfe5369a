package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"energy-measures/internal/api/models"
	"energy-measures/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ModelHandler serves the model files of one directory
type ModelHandler struct {
	modelsDir string
}

// NewModelHandler creates a model handler over dir, or MODELS_DIR, or
// ./models under the working directory.
func NewModelHandler(dir string) *ModelHandler {
	if dir == "" {
		dir = os.Getenv("MODELS_DIR")
	}
	if dir == "" {
		dir = "./models"
		if wd, err := os.Getwd(); err == nil {
			dir = filepath.Join(wd, "models")
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	logrus.WithField("dir", dir).Debug("model directory")
	return &ModelHandler{modelsDir: dir}
}

// ListModels handles GET /api/v1/models
func (h *ModelHandler) ListModels(c *gin.Context) {
	list := []models.ModelInfo{}

	entries, err := os.ReadDir(h.modelsDir)
	if err != nil {
		// A missing directory is an empty listing.
		logrus.WithError(err).WithField("dir", h.modelsDir).Warn("failed to read model directory")
		c.JSON(http.StatusOK, gin.H{"models": list, "count": 0})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := h.loadModelInfo(entry)
		if err != nil {
			logrus.WithError(err).WithField("file", entry.Name()).Warn("skipping model file")
			continue
		}
		list = append(list, *info)
	}

	c.JSON(http.StatusOK, gin.H{"models": list, "count": len(list)})
}

func (h *ModelHandler) loadModelInfo(entry os.DirEntry) (*models.ModelInfo, error) {
	path := filepath.Join(h.modelsDir, entry.Name())
	m, err := model.Load(path)
	if err != nil {
		return nil, err
	}
	stat, err := entry.Info()
	if err != nil {
		return nil, err
	}

	coils := 0
	for _, loop := range m.AirLoopHVACs() {
		coils += len(loop.TwoSpeedDXCoils())
	}

	return &models.ModelInfo{
		ID:             strings.TrimSuffix(entry.Name(), ".json"),
		Building:       m.Building().Name(),
		File:           path,
		AirLoops:       len(m.AirLoopHVACs()),
		TwoSpeedCoils:  coils,
		LifeCycleCosts: len(m.AllLifeCycleCosts()),
		ModifiedAt:     stat.ModTime().UTC(),
	}, nil
}

// load reads the model with the given id. Ids are bare file names.
func (h *ModelHandler) load(id string) (*model.Model, error) {
	id = strings.TrimSuffix(id, ".json")
	if id == "" || id != filepath.Base(id) || id == "." || id == ".." {
		return nil, fmt.Errorf("invalid model id %q", id)
	}
	return model.Load(filepath.Join(h.modelsDir, id+".json"))
}
