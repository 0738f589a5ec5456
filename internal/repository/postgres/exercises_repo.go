package postgres

import (
	"context"
	"strconv"

	"github.com/baharkarakas/exercise-tracker/internal/models"
	"github.com/baharkarakas/exercise-tracker/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type exercisesRepo struct{ pool *pgxpool.Pool }

func NewExercises(pool *pgxpool.Pool) repository.Exercises {
	return &exercisesRepo{pool: pool}
}

func (r *exercisesRepo) Create(ctx context.Context, e models.Exercise) (models.Exercise, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO exercises(id, user_id, username, description, duration, date)
		 VALUES($1,$2,$3,$4,$5,$6)
		 RETURNING created_at`,
		e.ID, e.UserID, e.Username, e.Description, e.Duration, e.Date,
	).Scan(&e.CreatedAt)
	if err != nil {
		return models.Exercise{}, err
	}
	return e, nil
}

func (r *exercisesRepo) ListByUser(ctx context.Context, userID string, f repository.LogFilter) ([]models.Exercise, error) {
	q := `SELECT id, user_id, username, description, duration, date, created_at
	        FROM exercises
	       WHERE user_id=$1`
	args := []any{userID}
	if f.From != nil {
		args = append(args, *f.From)
		q += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		q += ` AND date <= $` + strconv.Itoa(len(args))
	}
	q += ` ORDER BY created_at`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.UserID, &e.Username, &e.Description, &e.Duration, &e.Date, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *exercisesRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exercises WHERE user_id=$1`, userID,
	).Scan(&n)
	return n, err
}
