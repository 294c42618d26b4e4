package integration

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBallotCastingFlow walks the polling-day scenario end to end: cast once,
// repeat rejected, unknown fingerprint rejected, stats consistent, reset
// reopens the ballot.
func TestBallotCastingFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	token := app.adminToken(t)
	app.enroll(t, token, "Alice", "FPA", "Female")
	app.enroll(t, token, "Bob", "FPB", "Male")

	resp := app.doJSON(t, http.MethodPost, "/api/ballots", "", map[string]string{
		"fingerprint_key": "FPA", "booth": "booth-7",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cast map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cast))
	resp.Body.Close()
	assert.Equal(t, "success", cast["status"])
	assert.Equal(t, float64(1), cast["number"])
	assert.Equal(t, "Alice", cast["name"])

	// booth metadata was persisted
	var booth string
	require.NoError(t, app.DB.QueryRow("SELECT booth FROM voters WHERE fingerprint_key = 'FPA'").Scan(&booth))
	assert.Equal(t, "booth-7", booth)

	resp = app.doJSON(t, http.MethodPost, "/api/ballots", "", map[string]string{"fingerprint_key": "FPA"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = app.doJSON(t, http.MethodPost, "/api/ballots", "", map[string]string{"fingerprint_key": "FPX"})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = app.doJSON(t, http.MethodGet, "/api/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats struct {
		Total    int `json:"total"`
		Voted    int `json:"voted"`
		NotVoted int `json:"not_voted"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	resp.Body.Close()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Voted)
	assert.Equal(t, 1, stats.NotVoted)

	resp = app.doJSON(t, http.MethodPost, "/api/votes/reset", token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = app.doJSON(t, http.MethodGet, "/api/stats", token, nil)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	resp.Body.Close()
	assert.Equal(t, 0, stats.Voted)
	assert.Equal(t, 2, stats.NotVoted)

	// reset also cleared the cast metadata
	var boothCount int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM voters WHERE booth IS NOT NULL OR cast_at IS NOT NULL").Scan(&boothCount))
	assert.Equal(t, 0, boothCount)
}

// TestConcurrentCastsSameVoter verifies the test-and-set against the real
// database: many simultaneous casts on one fingerprint yield exactly one
// success.
func TestConcurrentCastsSameVoter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	token := app.adminToken(t)
	app.enroll(t, token, "Alice", "FPA", "")

	const attempts = 20
	var successes, conflicts atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := app.doJSON(t, http.MethodPost, "/api/ballots", "", map[string]string{
				"fingerprint_key": "FPA",
			})
			resp.Body.Close()
			switch resp.StatusCode {
			case http.StatusOK:
				successes.Add(1)
			case http.StatusConflict:
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(attempts-1), conflicts.Load())

	var voted int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM voters WHERE has_voted").Scan(&voted))
	assert.Equal(t, 1, voted)
}

// TestConcurrentEnrollmentsSameKey verifies the uniqueness constraint under
// racing enrollments: exactly one record wins.
func TestConcurrentEnrollmentsSameKey(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	token := app.adminToken(t)

	const attempts = 10
	var successes atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := app.doJSON(t, http.MethodPost, "/api/voters", token, map[string]string{
				"name": "Alice", "fingerprint_key": "FPA",
			})
			resp.Body.Close()
			if resp.StatusCode == http.StatusCreated {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())

	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM voters WHERE fingerprint_key = 'FPA'").Scan(&count))
	assert.Equal(t, 1, count)
}
