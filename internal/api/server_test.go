package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guizzs26/ballot_register/internal/ballot"
	"github.com/Guizzs26/ballot_register/internal/metrics"
	"github.com/Guizzs26/ballot_register/internal/model"
	"github.com/Guizzs26/ballot_register/internal/processing"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, opts ...processing.Option) *gin.Engine {
	t.Helper()
	m := metrics.NewProcessorMetrics(prometheus.NewRegistry(), "ballot", "api_test")
	return NewRouter(processing.NewVoteProcessor(ballot.New(), nil, m, opts...))
}

func do(t *testing.T, r http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func Test_Scenario(t *testing.T) {
	r := newRouter(t)

	for _, name := range []string{"A", "B", "C"} {
		code, body := do(t, r, http.MethodPost, "/candidates", `{"name":"`+name+`"}`)
		assert.Equal(t, http.StatusCreated, code)
		assert.Equal(t, name, body["candidate"])
	}
	for _, v := range [][2]string{{"V1", "A"}, {"V2", "B"}, {"V3", "C"}, {"V4", "A"}} {
		code, _ := do(t, r, http.MethodPost, "/votes", `{"voter_id":"`+v[0]+`","candidate":"`+v[1]+`"}`)
		assert.Equal(t, http.StatusCreated, code)
	}

	code, body := do(t, r, http.MethodGet, "/candidates/A/votes", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2.0, body["votes"])

	code, body = do(t, r, http.MethodGet, "/winner", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "A", body["winner"])
	assert.Equal(t, 2.0, body["votes"])

	req := httptest.NewRequest(http.MethodGet, "/candidates", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var s model.Standings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Equal(t, "A", s.Leader)
	assert.Equal(t, uint64(4), s.TotalVotes)
	assert.Equal(t, []model.Tally{{Candidate: "A", Votes: 2}, {Candidate: "B", Votes: 1}, {Candidate: "C", Votes: 1}}, s.Tallies)
}

func Test_Errors(t *testing.T) {
	r := newRouter(t, processing.WithAuthorizer(processing.AllowList("V1", "V2")))

	code, body := do(t, r, http.MethodGet, "/winner", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "no_vote_recorded", body["reason"])

	code, _ = do(t, r, http.MethodPost, "/candidates", `{"name":"A"}`)
	require.Equal(t, http.StatusCreated, code)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
		reason string
	}{
		{"duplicate candidate", http.MethodPost, "/candidates", `{"name":"A"}`, http.StatusConflict, "candidate_already_exists"},
		{"empty candidate", http.MethodPost, "/candidates", `{"name":""}`, http.StatusBadRequest, "bad_request"},
		{"malformed body", http.MethodPost, "/votes", `{"voter_id":`, http.StatusBadRequest, "bad_request"},
		{"unknown candidate", http.MethodPost, "/votes", `{"voter_id":"V1","candidate":"Z"}`, http.StatusNotFound, "candidate_not_found"},
		{"unknown tally", http.MethodGet, "/candidates/Z/votes", "", http.StatusNotFound, "candidate_not_found"},
		{"not authorized", http.MethodPost, "/votes", `{"voter_id":"V9","candidate":"A"}`, http.StatusForbidden, "not_authorized"},
		{"first vote", http.MethodPost, "/votes", `{"voter_id":"V2","candidate":"A"}`, http.StatusCreated, ""},
		{"repeat vote", http.MethodPost, "/votes", `{"voter_id":"V2","candidate":"Z"}`, http.StatusConflict, "already_voted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, code)
			if tt.reason != "" {
				assert.Equal(t, tt.reason, body["reason"])
			}
		})
	}

	code, body = do(t, r, http.MethodGet, "/candidates/A/votes", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1.0, body["votes"])
}

// snapshotRegister serves only snapshots; the point lookups must not be used
// to answer /winner.
type snapshotRegister struct {
	standings model.Standings
}

func (s snapshotRegister) RegisterCandidate(context.Context, string) error { panic("unused") }
func (s snapshotRegister) CastVote(context.Context, model.Vote) error      { panic("unused") }
func (s snapshotRegister) Votes(string) (uint64, error)                    { panic("unused") }
func (s snapshotRegister) Winner() (string, error)                         { panic("unused") }
func (s snapshotRegister) Standings() model.Standings                      { return s.standings }

func Test_Winner_SingleSnapshot(t *testing.T) {
	r := NewRouter(snapshotRegister{standings: model.Standings{
		Tallies:    []model.Tally{{Candidate: "A", Votes: 2}, {Candidate: "B", Votes: 3}},
		Leader:     "B",
		TotalVotes: 5,
	}})

	code, body := do(t, r, http.MethodGet, "/winner", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "B", body["winner"])
	assert.Equal(t, 3.0, body["votes"])

	empty := NewRouter(snapshotRegister{})
	code, body = do(t, empty, http.MethodGet, "/winner", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "no_vote_recorded", body["reason"])
}
