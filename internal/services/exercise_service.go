package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baharkarakas/exercise-tracker/internal/metrics"
	"github.com/baharkarakas/exercise-tracker/internal/models"
	repo "github.com/baharkarakas/exercise-tracker/internal/repository"
	"github.com/baharkarakas/exercise-tracker/internal/validate"
)

var (
	// ErrUnknownUser means the referenced user does not exist. This is a
	// client input error, not a missing resource.
	ErrUnknownUser = errors.New("ID not found")
	// ErrNoRecords means a log query matched nothing for the user.
	ErrNoRecords = errors.New("no record found")
)

type ExerciseService struct {
	users repo.Users
	ex    repo.Exercises
}

func NewExerciseService(users repo.Users, ex repo.Exercises) *ExerciseService {
	return &ExerciseService{users: users, ex: ex}
}

// ExerciseSummary is the wire view of a freshly created record. ID mirrors
// the record's user reference, not the record's own identifier: the contract
// keys exercise summaries on the owning user.
type ExerciseSummary struct {
	ID          string `json:"_id"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	Username    string `json:"username"`
}

// Add validates in, resolves the owning user, and persists a record with the
// username denormalized at write time. A missing date defaults to now.
func (s *ExerciseService) Add(ctx context.Context, userID string, in validate.ExerciseInput) (ExerciseSummary, error) {
	rec, errs := validate.Exercise(in)
	if errs != nil {
		return ExerciseSummary{}, errs
	}

	owner, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ExerciseSummary{}, ErrUnknownUser
	}
	if err != nil {
		return ExerciseSummary{}, err
	}

	date := rec.Date
	if !rec.HasDate {
		date = time.Now().UTC()
	}

	e, err := s.ex.Create(ctx, models.Exercise{
		UserID:      owner.ID,
		Username:    owner.Username,
		Description: rec.Description,
		Duration:    rec.Duration,
		Date:        date,
	})
	if err != nil {
		return ExerciseSummary{}, err
	}
	metrics.ExercisesLogged.Inc()

	return ExerciseSummary{
		ID:          e.UserID,
		Description: e.Description,
		Duration:    e.Duration,
		Date:        e.Date.Format(models.DateLayout),
		Username:    e.Username,
	}, nil
}

type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

type LogSummary struct {
	Username string     `json:"username"`
	ID       string     `json:"_id"`
	Count    int64      `json:"count"`
	Logs     []LogEntry `json:"logs"`
}

// Logs answers a filtered log query. From/to/limit that fail to parse are
// treated as absent. Count is the user's full historical total and is not
// narrowed by the filter; only the returned page is.
func (s *ExerciseService) Logs(ctx context.Context, userID, from, to, limit string) (LogSummary, error) {
	var f repo.LogFilter
	if from != "" {
		if t, err := validate.ParseDate(from); err == nil {
			f.From = &t
		}
	}
	if to != "" {
		if t, err := validate.ParseDate(to); err == nil {
			f.To = &t
		}
	}
	if limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			f.Limit = n
		}
	}

	var (
		page  []models.Exercise
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = s.ex.ListByUser(gctx, userID, f)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.ex.CountByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return LogSummary{}, err
	}
	if len(page) == 0 {
		return LogSummary{}, ErrNoRecords
	}
	metrics.LogQueries.Inc()

	logs := make([]LogEntry, 0, len(page))
	for _, e := range page {
		logs = append(logs, LogEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        e.Date.Format(models.DateLayout),
		})
	}
	// username and id come from the first returned record, not a fresh user
	// lookup; the denormalized copy is the source of truth here.
	return LogSummary{
		Username: page[0].Username,
		ID:       page[0].UserID,
		Count:    total,
		Logs:     logs,
	}, nil
}
