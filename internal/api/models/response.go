package models

import (
	"time"

	"energy-measures/internal/analysis"
	"energy-measures/internal/measure"
	"energy-measures/internal/model"
)

// MeasureListResponse lists every registered measure
type MeasureListResponse struct {
	Measures []measure.Descriptor `json:"measures"`
}

// ArgumentsResponse describes the arguments of one measure
type ArgumentsResponse struct {
	Measure   string                 `json:"measure"`
	Target    measure.Target         `json:"target"`
	Arguments measure.ArgumentVector `json:"arguments"`
}

// RunMeasureResponse carries the result of a run and the mutated document.
// Only one of Model and IDF is set.
type RunMeasureResponse struct {
	Result measure.Result `json:"result"`
	Model  *model.File    `json:"model,omitempty"`
	IDF    string         `json:"idf,omitempty"`
}

// TariffInfo represents one tariff definition file
type TariffInfo struct {
	File       string `json:"file"`
	TariffName string `json:"tariff_name"`
	Meter      string `json:"meter"`
	Objects    int    `json:"objects"`
}

// TariffListResponse lists the tariff library grouped by meter
type TariffListResponse struct {
	Source  string                  `json:"source"`
	Meters  []string                `json:"meters"`
	ByMeter map[string][]TariffInfo `json:"by_meter"`
	Count   int                     `json:"count"`
}

// ModelInfo represents a model file available to the server
type ModelInfo struct {
	ID             string    `json:"id"`
	Building       string    `json:"building"`
	File           string    `json:"file"`
	AirLoops       int       `json:"air_loops"`
	TwoSpeedCoils  int       `json:"two_speed_coils"`
	LifeCycleCosts int       `json:"life_cycle_costs"`
	ModifiedAt     time.Time `json:"modified_at"`
}

// LCCResponse is the lifecycle cost picture of a model
type LCCResponse struct {
	Summary  analysis.Summary `json:"summary"`
	Rankings []Ranking        `json:"rankings"`
}

// Ranking represents one object ranked by present value
type Ranking struct {
	Rank int `json:"rank"`
	analysis.ObjectCost
	PresentValueText string `json:"present_value_text"`
}

// NewRanking numbers c and adds the display form of its present value.
func NewRanking(rank int, c analysis.ObjectCost) Ranking {
	return Ranking{Rank: rank, ObjectCost: c, PresentValueText: "$" + measure.NeatNumber(c.PresentValue, 2)}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
