package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/proforma-cli/internal/config"
	"github.com/ledgerline/proforma-cli/internal/model"
	"github.com/ledgerline/proforma-cli/internal/proforma"
)

const validAssumptionsJSON = `{
	"property_name": "Harbor Inn",
	"units": 120,
	"starting_rate": 200,
	"revenue_growth": 0.03,
	"expense_growth": 0.025,
	"stabilized_occupancy": 0.70,
	"ramp_months": 18,
	"expense_lines": [{"name": "operating", "basis": "revenue_ratio", "ratio": 0.40}],
	"total_cost": 40000000,
	"loan_to_cost": 0.60,
	"interest_rate": 0.065,
	"amortization_years": 25,
	"hold_years": 5,
	"exit_cap_rate": 0.07,
	"selling_cost_ratio": 0.025,
	"reserve_ratio": 0.04
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	router := newRouter(proforma.NewEngine(proforma.SolverConfig{}), config.SensitivityConfig{Concurrency: 2, TimeoutSecs: 30})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestServe_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestServe_ProForma(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/v1/proforma", "application/json", strings.NewReader(validAssumptionsJSON))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out model.RunOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out.Projections, 5)
	assert.True(t, out.Returns.Converged())
	assert.Len(t, out.CashFlows, 6)
}

func TestServe_ProForma_MissingFields(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/v1/proforma", "application/json", strings.NewReader(`{"units": 120}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Errors model.ValidationErrors `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Errors.Has("total_cost"))
	assert.True(t, body.Errors.Has("exit_cap_rate"))
}

func TestServe_ProForma_OutOfRange(t *testing.T) {
	srv := newTestServer(t)

	bad := strings.Replace(validAssumptionsJSON, `"stabilized_occupancy": 0.70`, `"stabilized_occupancy": 1.3`, 1)
	resp, err := http.Post(srv.URL+"/v1/proforma", "application/json", strings.NewReader(bad))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Errors model.ValidationErrors `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Errors.Has("stabilized_occupancy"))
}

func TestServe_Sensitivity(t *testing.T) {
	srv := newTestServer(t)

	payload := `{"assumptions": ` + validAssumptionsJSON + `, "overrides": {"starting_rate": [180, 220], "exit_cap_rate": [0.065, 0.075]}}`
	resp, err := http.Post(srv.URL+"/v1/sensitivity", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result model.SensitivityResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Len(t, result.Cells, 4)
	assert.False(t, result.Partial)
}

func TestServe_Sensitivity_NoOverrides(t *testing.T) {
	srv := newTestServer(t)

	payload := `{"assumptions": ` + validAssumptionsJSON + `}`
	resp, err := http.Post(srv.URL+"/v1/sensitivity", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServe_InvalidBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/v1/proforma", "application/json", strings.NewReader("not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
