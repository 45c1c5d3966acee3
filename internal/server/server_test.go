package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/project-match/internal/journal"
	"github.com/pdiddy/project-match/internal/ledger"
	"github.com/pdiddy/project-match/internal/store"
	"github.com/pdiddy/project-match/pkg/types"
)

func testStore() *store.Store {
	return store.New(store.Collections{
		Researchers: []types.Researcher{
			{Fullname: "Ada Lovelace", Email: "ada@x.edu", Image: "akademisyen_fotograflari/ada.jpg"},
			{Fullname: "Bob", Email: "bob@x.edu"},
		},
		Projects: []types.Project{
			{ID: "P1", Title: "Analytical Engines", Budget: "1000", Status: "SIGNED"},
		},
		Matches: []types.Match{
			{Researcher: "Ada Lovelace", ProjectID: "P1", Score: 90},
			{Researcher: "Bob", ProjectID: "P1", Score: 50},
			{Researcher: "Ada Lovelace", ProjectID: "P9", Score: 40},
		},
		Decisions: []types.Decision{
			{Academician: "Ada Lovelace", ProjectID: "P1", Decision: types.DecisionAccepted, Rating: 5},
			{Academician: "Bob", ProjectID: "P1", Decision: types.DecisionAccepted},
		},
	})
}

func setupTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	s := testStore()
	cfg := types.DefaultConfig()

	srv, err := NewServer(s, ledger.New(s, nil, nil), journal.New(s, nil, nil), zap.NewNop(), cfg)
	require.NoError(t, err)
	return srv, s
}

func do(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewServer(t *testing.T) {
	s := testStore()
	l := ledger.New(s, nil, nil)
	j := journal.New(s, nil, nil)
	cfg := types.DefaultConfig()

	t.Run("creates server", func(t *testing.T) {
		srv, err := NewServer(s, l, j, zap.NewNop(), cfg)
		require.NoError(t, err)
		assert.NotNil(t, srv.echo)
		assert.Equal(t, cfg, srv.config)
	})

	t.Run("returns error when store is nil", func(t *testing.T) {
		_, err := NewServer(nil, l, j, zap.NewNop(), cfg)
		assert.ErrorContains(t, err, "store cannot be nil")
	})

	t.Run("returns error when ledger is nil", func(t *testing.T) {
		_, err := NewServer(s, nil, j, zap.NewNop(), cfg)
		assert.ErrorContains(t, err, "ledger and journal are required")
	})

	t.Run("returns error when logger is nil", func(t *testing.T) {
		_, err := NewServer(s, l, j, nil, cfg)
		assert.ErrorContains(t, err, "logger is required")
	})
}

func TestHandleHealth(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := do(srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestHandleProfile(t *testing.T) {
	t.Run("composes profile and records access", func(t *testing.T) {
		srv, s := setupTestServer(t)

		rec := do(srv, http.MethodPost, "/api/profile", `{"name":"Ada Lovelace"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp types.ProfileResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Ada Lovelace", resp.Profile.Fullname)
		assert.Equal(t, "/akademisyen_fotograflari/ada.jpg", resp.Profile.Image)
		require.Len(t, resp.Projects, 2)
		assert.Equal(t, "P1", resp.Projects[0].ID)
		assert.Equal(t, []string{"Bob"}, resp.Projects[0].Collaborators)
		assert.Equal(t, "Proje-P9", resp.Projects[1].Title)

		logs := s.Entries(types.CollectionLogs)
		require.Len(t, logs, 1)
		assert.Equal(t, "Ada Lovelace", logs[0]["user"])
		assert.Equal(t, journal.ActionProfileView, logs[0]["action"])
	})

	t.Run("unknown researcher gets empty project list", func(t *testing.T) {
		srv, _ := setupTestServer(t)

		rec := do(srv, http.MethodPost, "/api/profile", `{"name":"Nobody"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"projects":[]`)
		assert.Contains(t, rec.Body.String(), `"Fullname":"Nobody"`)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		srv, s := setupTestServer(t)

		rec := do(srv, http.MethodPost, "/api/profile", `{"name":"  "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, s.Entries(types.CollectionLogs))
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		srv, _ := setupTestServer(t)

		rec := do(srv, http.MethodPost, "/api/profile", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleAdmin(t *testing.T) {
	srv, s := setupTestServer(t)

	rec := do(srv, http.MethodGet, "/api/admin", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.AdminSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Academicians, 2)
	assert.Equal(t, "Ada Lovelace", resp.Academicians[0].Name)
	assert.Equal(t, 2, resp.Academicians[0].ProjectCount)
	assert.Equal(t, 90, resp.Academicians[0].BestScore)
	assert.Equal(t, 5.0, resp.Academicians[0].AverageRating)
	assert.Len(t, resp.Feedbacks, 2)
	assert.Empty(t, resp.Logs, "the view does not include its own access")
	assert.NotNil(t, resp.Announcements)

	logs := s.Entries(types.CollectionLogs)
	require.Len(t, logs, 1)
	assert.Equal(t, AdminUser, logs[0]["user"])
	assert.Equal(t, journal.ActionAdminView, logs[0]["action"])

	rec = do(srv, http.MethodGet, "/api/admin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Logs, 1)
}

func TestHandleGraph(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := do(srv, http.MethodGet, "/api/graph?name=Ada+Lovelace", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var g types.Graph
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
	require.Len(t, g.Nodes, 2)
	assert.True(t, g.Nodes[0].IsCenter)
	assert.Equal(t, []types.Link{{Source: "Ada Lovelace", Target: "Bob"}}, g.Links)

	rec = do(srv, http.MethodGet, "/api/graph?name=Nobody", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"nodes":[],"links":[]}`, rec.Body.String())
}

func TestHandleDecision(t *testing.T) {
	t.Run("records decision", func(t *testing.T) {
		srv, s := setupTestServer(t)

		rec := do(srv, http.MethodPost, "/api/decision",
			`{"academician":"Bob","projId":"P9","projectTitle":"Proje-P9","decision":"waiting","note":"later","rating":"3"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp DecisionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, types.DecisionWaiting, resp.Decision.Decision)
		assert.Equal(t, 3, resp.Decision.Rating)
		assert.Len(t, s.Decisions(), 3)
	})

	t.Run("updates existing decision", func(t *testing.T) {
		srv, s := setupTestServer(t)

		rec := do(srv, http.MethodPost, "/api/decision",
			`{"academician":"Ada Lovelace","projId":"P1","decision":"rejected","rating":1}`)
		require.Equal(t, http.StatusOK, rec.Code)

		ds := s.Decisions()
		require.Len(t, ds, 2)
		assert.Equal(t, types.DecisionRejected, ds[0].Decision)
		assert.Equal(t, 1, ds[0].Rating)
	})

	t.Run("rejects invalid decision", func(t *testing.T) {
		srv, s := setupTestServer(t)

		rec := do(srv, http.MethodPost, "/api/decision",
			`{"academician":"Ada Lovelace","projId":"P1","decision":"maybe"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "decision", resp.Field)
		assert.Equal(t, types.DecisionAccepted, s.Decisions()[0].Decision)
	})

	t.Run("rejects out of range rating", func(t *testing.T) {
		srv, _ := setupTestServer(t)

		rec := do(srv, http.MethodPost, "/api/decision",
			`{"academician":"Ada Lovelace","projId":"P1","decision":"accepted","rating":9}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"field":"rating"`)
	})
}

func TestHandleAnnouncements(t *testing.T) {
	srv, s := setupTestServer(t)

	rec := do(srv, http.MethodGet, "/api/announcements", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(srv, http.MethodPost, "/api/announcements", `{"title":"Call open","body":"Horizon"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, "Call open", saved["title"])
	assert.NotEmpty(t, saved[journal.TimestampKey])
	assert.Len(t, s.Entries(types.CollectionAnnouncements), 1)

	rec = do(srv, http.MethodPost, "/api/announcements", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)

	do(srv, http.MethodPost, "/api/decision", `{"academician":"Ada Lovelace","projId":"P1","decision":"accepted"}`)

	rec := do(srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "project_match_decision_upserts_total")
}
