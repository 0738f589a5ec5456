package api

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baharkarakas/exercise-tracker/internal/api/httpx"
	"github.com/baharkarakas/exercise-tracker/internal/config"
	"github.com/baharkarakas/exercise-tracker/internal/middleware"
	"github.com/baharkarakas/exercise-tracker/internal/models"
	"github.com/baharkarakas/exercise-tracker/internal/repository"
	"github.com/baharkarakas/exercise-tracker/internal/services"
	"github.com/baharkarakas/exercise-tracker/internal/validate"
)

//go:embed index.html
var indexHTML []byte

func NewRouter(cfg config.Config, us *services.UserService, es *services.ExerciseService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexHTML)
	})

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// ---------- users ----------
		r.Get("/users", func(w http.ResponseWriter, r *http.Request) {
			users, err := us.List(r.Context())
			if err != nil {
				httpx.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}
			if users == nil {
				users = []models.User{} // empty list stays [] on the wire
			}
			httpx.WriteJSON(w, http.StatusOK, users)
		})

		r.Post("/users", func(w http.ResponseWriter, r *http.Request) {
			form, err := readForm(r)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad request")
				return
			}
			u, err := us.Create(r.Context(), form.Get("username"))
			var verrs validate.Errs
			switch {
			case errors.As(err, &verrs):
				// compatibility: validation failures ride a 200 with an error list
				httpx.WriteError(w, http.StatusOK, verrs)
			case errors.Is(err, repository.ErrDuplicateUsername):
				httpx.WriteError(w, http.StatusOK, "username already exists")
			case err != nil:
				httpx.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
			default:
				httpx.WriteJSON(w, http.StatusOK, u)
			}
		})

		// ---------- exercises ----------
		r.Post("/users/{userId}/exercises", func(w http.ResponseWriter, r *http.Request) {
			form, err := readForm(r)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad request")
				return
			}
			sum, err := es.Add(r.Context(), chi.URLParam(r, "userId"), validate.ExerciseInput{
				Description: form.Get("description"),
				Duration:    form.Get("duration"),
				Date:        form.Get("date"),
				ID:          form.Get("_id"),
			})
			var verrs validate.Errs
			switch {
			case errors.As(err, &verrs):
				httpx.WriteError(w, http.StatusOK, verrs)
			case errors.Is(err, services.ErrUnknownUser):
				httpx.WriteError(w, http.StatusBadRequest, "ID not found")
			case err != nil:
				httpx.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
			default:
				httpx.WriteJSON(w, http.StatusOK, sum)
			}
		})

		// ---------- logs ----------
		r.Get("/users/{userId}/logs", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			sum, err := es.Logs(r.Context(), chi.URLParam(r, "userId"),
				q.Get("from"), q.Get("to"), q.Get("limit"))
			switch {
			case errors.Is(err, services.ErrNoRecords):
				httpx.WriteError(w, http.StatusNotFound, "no record found")
			case err != nil:
				httpx.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
			default:
				httpx.WriteJSON(w, http.StatusOK, sum)
			}
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "Not Found")
	})

	return r
}

// readForm returns the request fields from an urlencoded form, or from a JSON
// body when the client sends one; both carry the same field names.
func readForm(r *http.Request) (url.Values, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, err
		}
		vals := url.Values{}
		for k, v := range body {
			switch t := v.(type) {
			case string:
				vals.Set(k, t)
			case float64:
				vals.Set(k, strconv.FormatFloat(t, 'f', -1, 64))
			case nil:
			default:
				vals.Set(k, fmt.Sprint(t))
			}
		}
		return vals, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}
