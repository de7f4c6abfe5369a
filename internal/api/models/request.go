package models

import "encoding/json"

// RunMeasureRequest is the body of POST /api/v1/measures/:name/run. Model
// measures read Model; workspace measures read IDF, or translate Model when
// IDF is empty.
type RunMeasureRequest struct {
	Model     json.RawMessage   `json:"model,omitempty"`
	IDF       string            `json:"idf,omitempty"`
	Arguments map[string]string `json:"arguments,omitempty"`
}

// LCCRequest is the body of POST /api/v1/lcc.
type LCCRequest struct {
	Model json.RawMessage `json:"model" binding:"required"`
	Limit int             `json:"limit,omitempty"` // default: 10
}

// ArgumentsQuery selects the model whose objects populate choice arguments.
type ArgumentsQuery struct {
	Model string `form:"model,omitempty"` // file name under MODELS_DIR, without .json
}
