package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/exercise-tracker/internal/config"
	"github.com/baharkarakas/exercise-tracker/internal/repository/memory"
	"github.com/baharkarakas/exercise-tracker/internal/services"
)

func newTestRouter() http.Handler {
	store := memory.NewStore()
	return NewRouter(config.Config{Env: "test"},
		services.NewUserService(store.Users()),
		services.NewExerciseService(store.Users(), store.Exercises()))
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), "body: %s", rr.Body.String())
}

func TestCreateUserEndpoint(t *testing.T) {
	r := newTestRouter()

	rr := postForm(t, r, "/api/users", url.Values{"username": {"alice"}})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		ID       string `json:"_id"`
		Username string `json:"username"`
	}
	decode(t, rr, &resp)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "alice", resp.Username)
}

func TestCreateUserDuplicateEndpoint(t *testing.T) {
	r := newTestRouter()

	rr := postForm(t, r, "/api/users", url.Values{"username": {"alice"}})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = postForm(t, r, "/api/users", url.Values{"username": {"alice"}})
	// the original contract rides duplicate conflicts on a 200 error payload
	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Error string `json:"error"`
	}
	decode(t, rr, &resp)
	assert.Equal(t, "username already exists", resp.Error)
}

func TestCreateUserValidationEndpoint(t *testing.T) {
	r := newTestRouter()

	rr := postForm(t, r, "/api/users", url.Values{"username": {"john doe"}})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Error []struct {
			Field string `json:"field"`
			Msg   string `json:"msg"`
		} `json:"error"`
	}
	decode(t, rr, &resp)
	require.Len(t, resp.Error, 1)
	assert.Equal(t, "username", resp.Error[0].Field)
	assert.Equal(t, "username must be alphabet or numbers", resp.Error[0].Msg)
}

func TestListUsersEndpoint(t *testing.T) {
	r := newTestRouter()

	rr := get(t, r, "/api/users")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))

	postForm(t, r, "/api/users", url.Values{"username": {"alice"}})
	postForm(t, r, "/api/users", url.Values{"username": {"bob"}})

	rr = get(t, r, "/api/users")
	var users []struct {
		ID       string `json:"_id"`
		Username string `json:"username"`
	}
	decode(t, rr, &users)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}

func TestAddExerciseUnknownUserEndpoint(t *testing.T) {
	r := newTestRouter()

	rr := postForm(t, r, "/api/users/"+uuid.NewString()+"/exercises", url.Values{
		"description": {"run"},
		"duration":    {"30"},
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp struct {
		Error string `json:"error"`
	}
	decode(t, rr, &resp)
	assert.Equal(t, "ID not found", resp.Error)
}

func TestLogsNotFoundEndpoint(t *testing.T) {
	r := newTestRouter()

	rr := get(t, r, "/api/users/"+uuid.NewString()+"/logs")
	require.Equal(t, http.StatusNotFound, rr.Code)
	var resp struct {
		Error string `json:"error"`
	}
	decode(t, rr, &resp)
	assert.Equal(t, "no record found", resp.Error)
}

func TestExerciseRoundTrip(t *testing.T) {
	r := newTestRouter()

	rr := postForm(t, r, "/api/users", url.Values{"username": {"alice"}})
	require.Equal(t, http.StatusOK, rr.Code)
	var user struct {
		ID string `json:"_id"`
	}
	decode(t, rr, &user)

	rr = postForm(t, r, "/api/users/"+user.ID+"/exercises", url.Values{
		"description": {"morning run"},
		"duration":    {"30"},
		"date":        {"2024-01-01"},
	})
	require.Equal(t, http.StatusOK, rr.Code)
	var created struct {
		ID          string `json:"_id"`
		Description string `json:"description"`
		Duration    int    `json:"duration"`
		Date        string `json:"date"`
		Username    string `json:"username"`
	}
	decode(t, rr, &created)
	assert.Equal(t, user.ID, created.ID)
	assert.Equal(t, "Mon Jan 01 2024", created.Date)
	assert.Equal(t, "alice", created.Username)

	rr = postForm(t, r, "/api/users/"+user.ID+"/exercises", url.Values{
		"description": {"swim"},
		"duration":    {"45"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = get(t, r, "/api/users/"+user.ID+"/logs")
	require.Equal(t, http.StatusOK, rr.Code)
	var logs struct {
		Username string `json:"username"`
		ID       string `json:"_id"`
		Count    int64  `json:"count"`
		Logs     []struct {
			Description string `json:"description"`
			Duration    int    `json:"duration"`
			Date        string `json:"date"`
		} `json:"logs"`
	}
	decode(t, rr, &logs)
	assert.Equal(t, "alice", logs.Username)
	assert.Equal(t, user.ID, logs.ID)
	assert.Equal(t, int64(2), logs.Count)
	require.Len(t, logs.Logs, 2)
	assert.Equal(t, "morning run", logs.Logs[0].Description)
	assert.Equal(t, 30, logs.Logs[0].Duration)
	assert.Equal(t, "Mon Jan 01 2024", logs.Logs[0].Date)
	assert.Equal(t, "swim", logs.Logs[1].Description)
}

func TestLogsFilteredEndpoint(t *testing.T) {
	r := newTestRouter()

	rr := postForm(t, r, "/api/users", url.Values{"username": {"alice"}})
	var user struct {
		ID string `json:"_id"`
	}
	decode(t, rr, &user)

	for _, date := range []string{"2024-01-01", "2024-02-01", "2024-03-01"} {
		rr = postForm(t, r, "/api/users/"+user.ID+"/exercises", url.Values{
			"description": {"run"},
			"duration":    {"30"},
			"date":        {date},
		})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr = get(t, r, "/api/users/"+user.ID+"/logs?from=2024-01-15&to=2024-02-15")
	require.Equal(t, http.StatusOK, rr.Code)
	var logs struct {
		Count int64 `json:"count"`
		Logs  []struct {
			Date string `json:"date"`
		} `json:"logs"`
	}
	decode(t, rr, &logs)
	require.Len(t, logs.Logs, 1)
	assert.Equal(t, "Thu Feb 01 2024", logs.Logs[0].Date)
	assert.Equal(t, int64(3), logs.Count)
}

func TestAddExerciseJSONBody(t *testing.T) {
	r := newTestRouter()

	rr := postForm(t, r, "/api/users", url.Values{"username": {"alice"}})
	var user struct {
		ID string `json:"_id"`
	}
	decode(t, rr, &user)

	req := httptest.NewRequest(http.MethodPost, "/api/users/"+user.ID+"/exercises",
		strings.NewReader(`{"description":"row","duration":20}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		Duration int `json:"duration"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 20, created.Duration)
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter()
	rr := get(t, r, "/api/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestIndexPage(t *testing.T) {
	r := newTestRouter()
	rr := get(t, r, "/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "Exercise Tracker")
}
