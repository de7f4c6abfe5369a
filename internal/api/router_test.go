package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"energy-measures/internal/api/middleware"
	"energy-measures/internal/measure"
	"energy-measures/internal/measures"
	"energy-measures/internal/model"
	"energy-measures/internal/tariff"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logrus.SetLevel(logrus.WarnLevel)
	os.Exit(m.Run())
}

func officeModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New("Office")
	loop := m.AddAirLoopHVAC("AHU-1")
	coil := model.NewCoilCoolingDXTwoSpeed("DX-1")
	require.NoError(t, coil.SetRatedHighSpeedCOP(3))
	loop.AddSupplyComponent(coil)
	_, err := m.CreateLifeCycleCost("Mat", coil, decimal.NewFromInt(800), model.CostPerEach, model.CategoryConstruction, 0, 0)
	require.NoError(t, err)
	_, err = m.CreateLifeCycleCost("Roof", m.Building(), decimal.NewFromInt(100), model.CostPerEach, model.CategoryConstruction, 0, 0)
	require.NoError(t, err)
	return m
}

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	lib, err := tariff.Bundled()
	require.NoError(t, err)
	reg, err := measures.NewRegistry(lib)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, model.Save(officeModel(t), filepath.Join(dir, "office.json")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	return NewRouter(Options{Registry: reg, Tariffs: lib, ModelsDir: dir, CORSOrigins: []string{"*"}}), dir
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListMeasures(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/measures", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Measures []measure.Descriptor `json:"measures"`
	}
	decode(t, w, &body)
	require.Len(t, body.Measures, 2)
	assert.Equal(t, "set_cop_two_speed_dx", body.Measures[0].Name)
	assert.Equal(t, measure.TargetWorkspace, body.Measures[1].Target)
}

func TestGetArguments(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantArgs   int
		wantChoice string
	}{
		{"tariff selector", "/api/v1/measures/tariff_selection_generic/arguments", http.StatusOK, 2, ""},
		{"cop editor without model", "/api/v1/measures/set_cop_two_speed_dx/arguments", http.StatusOK, 11, "*All Air Loops*"},
		{"cop editor with model", "/api/v1/measures/set_cop_two_speed_dx/arguments?model=office", http.StatusOK, 11, "AHU-1"},
		{"missing model", "/api/v1/measures/set_cop_two_speed_dx/arguments?model=nope", http.StatusNotFound, 0, ""},
		{"model outside dir", "/api/v1/measures/set_cop_two_speed_dx/arguments?model=../office", http.StatusNotFound, 0, ""},
		{"unknown measure", "/api/v1/measures/nope/arguments", http.StatusNotFound, 0, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, http.MethodGet, tc.path, nil)
			require.Equal(t, tc.wantStatus, w.Code, w.Body.String())
			if tc.wantStatus != http.StatusOK {
				var e errorBody
				decode(t, w, &e)
				assert.NotEmpty(t, e.Error.Code)
				return
			}
			var body struct {
				Arguments []measure.Argument `json:"arguments"`
			}
			decode(t, w, &body)
			assert.Len(t, body.Arguments, tc.wantArgs)
			if tc.wantChoice != "" {
				assert.Equal(t, tc.wantChoice, body.Arguments[0].Choices[0].Display)
			}
		})
	}
}

func TestRunMeasure_Model(t *testing.T) {
	// GIVEN a posted model
	r, _ := newTestRouter(t)
	raw, err := json.Marshal(officeModel(t))
	require.NoError(t, err)

	// WHEN the COP editor runs on it
	w := do(t, r, http.MethodPost, "/api/v1/measures/set_cop_two_speed_dx/run", map[string]interface{}{
		"model":     json.RawMessage(raw),
		"arguments": map[string]string{"cop_high": "4.2", "cop_low": "4.8"},
	})

	// THEN the mutated model comes back with the result
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		Result measure.Result  `json:"result"`
		Model  json.RawMessage `json:"model"`
	}
	decode(t, w, &body)
	assert.Equal(t, measure.Success, body.Result.Outcome)

	var got model.Model
	require.NoError(t, json.Unmarshal(body.Model, &got))
	hi, ok := got.AirLoopHVACs()[0].TwoSpeedDXCoils()[0].RatedHighSpeedCOP()
	require.True(t, ok)
	assert.Equal(t, 4.2, hi)
}

func TestRunMeasure_FailIs422(t *testing.T) {
	r, _ := newTestRouter(t)
	raw, err := json.Marshal(officeModel(t))
	require.NoError(t, err)

	w := do(t, r, http.MethodPost, "/api/v1/measures/set_cop_two_speed_dx/run", map[string]interface{}{
		"model":     json.RawMessage(raw),
		"arguments": map[string]string{"cop_high": "0"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Result measure.Result `json:"result"`
	}
	decode(t, w, &body)
	assert.Equal(t, measure.Fail, body.Result.Outcome)
	assert.NotEmpty(t, body.Result.Errors)
}

func TestRunMeasure_Workspace(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/measures/tariff_selection_generic/run", map[string]interface{}{
		"idf": "Building, Office;\nTimestep, 6;\n",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		IDF string `json:"idf"`
	}
	decode(t, w, &body)
	assert.Contains(t, body.IDF, "UtilityCost:Tariff")
	assert.NotContains(t, body.IDF, "  6;")
}

func TestRunMeasure_BadRequests(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name     string
		path     string
		body     interface{}
		wantCode string
	}{
		{"model measure without model", "/api/v1/measures/set_cop_two_speed_dx/run", map[string]string{}, "INVALID_MODEL"},
		{"model is not a model", "/api/v1/measures/set_cop_two_speed_dx/run", map[string]interface{}{"model": []int{1}}, "INVALID_MODEL"},
		{"workspace measure without input", "/api/v1/measures/tariff_selection_generic/run", map[string]string{}, "INVALID_WORKSPACE"},
		{"bad idf", "/api/v1/measures/tariff_selection_generic/run", map[string]string{"idf": "Timestep, 4"}, "INVALID_WORKSPACE"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, tc.path, tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			var e errorBody
			decode(t, w, &e)
			assert.Equal(t, tc.wantCode, e.Error.Code)
		})
	}
}

func TestListTariffs(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/tariffs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Source string   `json:"source"`
		Meters []string `json:"meters"`
		Count  int      `json:"count"`
	}
	decode(t, w, &body)
	assert.Equal(t, "embedded", body.Source)
	assert.Len(t, body.Meters, 2)
	assert.Equal(t, 4, body.Count)

	w = do(t, r, http.MethodGet, "/api/v1/tariffs?meter=NaturalGas:Facility", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	assert.Equal(t, []string{"NaturalGas:Facility"}, body.Meters)

	w = do(t, r, http.MethodGet, "/api/v1/tariffs?meter=Steam", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListModels_SkipsUnreadableFiles(t *testing.T) {
	r, dir := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/models", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Models []struct {
			ID            string `json:"id"`
			Building      string `json:"building"`
			File          string `json:"file"`
			TwoSpeedCoils int    `json:"two_speed_coils"`
		} `json:"models"`
		Count int `json:"count"`
	}
	decode(t, w, &body)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "office", body.Models[0].ID)
	assert.Equal(t, "Office", body.Models[0].Building)
	assert.Equal(t, 1, body.Models[0].TwoSpeedCoils)
	assert.True(t, strings.HasSuffix(body.Models[0].File, "office.json"), dir)
}

func TestAnalyze(t *testing.T) {
	r, _ := newTestRouter(t)
	raw, err := json.Marshal(officeModel(t))
	require.NoError(t, err)

	w := do(t, r, http.MethodPost, "/api/v1/lcc", map[string]interface{}{"model": json.RawMessage(raw), "limit": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Summary struct {
			Year0Capital decimal.Decimal `json:"year0_capital"`
		} `json:"summary"`
		Rankings []struct {
			Rank             int    `json:"rank"`
			Name             string `json:"name"`
			PresentValueText string `json:"present_value_text"`
		} `json:"rankings"`
	}
	decode(t, w, &body)
	assert.True(t, body.Summary.Year0Capital.Equal(decimal.NewFromInt(900)))
	require.Len(t, body.Rankings, 1)
	assert.Equal(t, 1, body.Rankings[0].Rank)
	assert.Equal(t, "DX-1", body.Rankings[0].Name)
	assert.Equal(t, "$800.00", body.Rankings[0].PresentValueText)

	w = do(t, r, http.MethodPost, "/api/v1/lcc", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/lcc", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "")
	assert.Equal(t, []string{"*"}, middleware.CORSOrigins())

	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, middleware.CORSOrigins())
}

func TestErrorHandler_RecoversPanics(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := do(t, r, http.MethodGet, "/boom", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var e errorBody
	decode(t, w, &e)
	assert.Equal(t, "INTERNAL_ERROR", e.Error.Code)
	assert.Equal(t, "boom", e.Error.Message)
}
