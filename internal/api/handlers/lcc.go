package handlers

import (
	"net/http"

	"energy-measures/internal/analysis"
	"energy-measures/internal/api/models"

	"github.com/gin-gonic/gin"
)

const defaultRankLimit = 10

// LCCHandler reports lifecycle costs of a posted model
type LCCHandler struct{}

func NewLCCHandler() *LCCHandler {
	return &LCCHandler{}
}

// Analyze handles POST /api/v1/lcc
func (h *LCCHandler) Analyze(c *gin.Context) {
	var req models.LCCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	m, err := decodeModel(req.Model)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_MODEL", err.Error())
		return
	}

	ranked := analysis.RankByPresentValue(m)
	limit := req.Limit
	if limit <= 0 {
		limit = defaultRankLimit
	}
	if limit > len(ranked) {
		limit = len(ranked)
	}
	ranked = ranked[:limit]

	rankings := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		rankings[i] = models.NewRanking(i+1, r)
	}

	c.JSON(http.StatusOK, models.LCCResponse{
		Summary:  analysis.Summarize(m.AllLifeCycleCosts(), m.LCCParameters),
		Rankings: rankings,
	})
}
