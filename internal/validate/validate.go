// Package validate normalizes raw request fields before they reach the
// services. Checks run as ordered step chains per field and accumulate every
// failure instead of stopping at the first one; nothing here touches the store.
package validate

import (
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Step is a pure transform/check over a single field value. It returns the
// possibly rewritten value and an empty msg, or a failure message.
type Step func(value string) (string, string)

// Chain runs steps over value in order, stopping the chain at the first
// failing step and recording it in errs. Other fields keep being evaluated
// by the caller, so a response carries every field's errors at once.
func Chain(field, value string, errs *Errs, steps ...Step) string {
	for _, st := range steps {
		v, msg := st(value)
		if msg != "" {
			*errs = append(*errs, ErrField{Field: field, Msg: msg})
			return value
		}
		value = v
	}
	return value
}

func Trim() Step {
	return func(v string) (string, string) { return strings.TrimSpace(v), "" }
}

// Escape rewrites markup-significant characters so stored values are inert
// when echoed back into HTML.
func Escape() Step {
	return func(v string) (string, string) { return html.EscapeString(v), "" }
}

func Required(msg string) Step {
	return func(v string) (string, string) {
		if v == "" {
			return v, msg
		}
		return v, ""
	}
}

func Alphanumeric(msg string) Step {
	return func(v string) (string, string) {
		for _, r := range v {
			if !isAlnum(r) {
				return v, msg
			}
		}
		return v, ""
	}
}

func MaxLen(n int, msg string) Step {
	return func(v string) (string, string) {
		if len(v) > n {
			return v, msg
		}
		return v, ""
	}
}

func Int(msg string) Step {
	return func(v string) (string, string) {
		if _, err := strconv.Atoi(v); err != nil {
			return v, msg
		}
		return v, ""
	}
}

func MinInt(min int, msg string) Step {
	return func(v string) (string, string) {
		if n, err := strconv.Atoi(v); err != nil || n < min {
			return v, msg
		}
		return v, ""
	}
}

// UUID accepts only syntactically valid document identifiers.
func UUID(msg string) Step {
	return func(v string) (string, string) {
		if _, err := uuid.Parse(v); err != nil {
			return v, msg
		}
		return v, ""
	}
}

func isAlnum(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// Username trims, escapes and checks a raw username: non-empty, letters and
// digits only, at most 30 characters.
func Username(raw string) (string, Errs) {
	var errs Errs
	v := Chain("username", raw, &errs,
		Trim(),
		Escape(),
		Required("username must be alphabet or numbers"),
		Alphanumeric("username must be alphabet or numbers"),
		MaxLen(30, "username too long"),
	)
	if len(errs) > 0 {
		return "", errs
	}
	return v, nil
}

// ExerciseInput is the raw form payload for logging an exercise. ID carries
// the optional "_id" field; when present it must at least look like a real
// document identifier.
type ExerciseInput struct {
	Description string
	Duration    string
	Date        string
	ID          string
}

// ExerciseRecord is the coerced result of a valid ExerciseInput. HasDate is
// false when the client omitted the date, meaning "use server current time".
type ExerciseRecord struct {
	Description string
	Duration    int
	Date        time.Time
	HasDate     bool
}

// Exercise validates in and coerces it into an ExerciseRecord. All field
// failures are returned together.
func Exercise(in ExerciseInput) (ExerciseRecord, Errs) {
	var errs Errs

	if strings.TrimSpace(in.ID) != "" {
		Chain("_id", strings.TrimSpace(in.ID), &errs, UUID("ID must be in proper format"))
	}

	desc := Chain("description", in.Description, &errs,
		Trim(),
		Required("Please input description"),
		MaxLen(120, "description too long"),
	)

	dur := Chain("duration", in.Duration, &errs,
		Trim(),
		Required("Please input duration"),
		Int("Please input duration"),
		MinInt(1, "duration too short"),
	)

	var rec ExerciseRecord
	if raw := strings.TrimSpace(in.Date); raw != "" {
		t, err := ParseDate(raw)
		if err != nil {
			errs = append(errs, ErrField{Field: "date", Msg: "date must be a valid date"})
		} else {
			rec.Date = t
			rec.HasDate = true
		}
	}

	if len(errs) > 0 {
		return ExerciseRecord{}, errs
	}
	rec.Description = desc
	rec.Duration, _ = strconv.Atoi(dur)
	return rec, nil
}

// ParseDate reads an ISO-8601 calendar date, with or without a time part.
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
