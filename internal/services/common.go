package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/yungbote/moodlog-backend/internal/domain/aggregates"
	"github.com/yungbote/moodlog-backend/internal/domain/mood"
	"github.com/yungbote/moodlog-backend/internal/platform/ctxutil"
)

// Clock returns the current instant. Services default to time.Now.
type Clock func() time.Time

func requireUserID(ctx context.Context, op string) (uuid.UUID, error) {
	id := ctxutil.UserID(ctx)
	if id == uuid.Nil {
		return uuid.Nil, aggregates.Unauthorized(op, "not authenticated")
	}
	return id, nil
}

// trimmedPtr trims s and returns nil for blank input.
func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func tooLong(s *string, max int) bool {
	return s != nil && utf8.RuneCountInString(*s) > max
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

const DateLayout = "2006-01-02"

// ParseDate reads a YYYY-MM-DD calendar date. Blank input yields the zero time.
func ParseDate(op, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, aggregates.Validation(op, "date must use the YYYY-MM-DD format")
	}
	return d, nil
}

// civilDay returns [start, next start) of date's calendar day, taking the
// year/month/day from date as-is and anchoring them in loc.
func civilDay(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, orUTC(loc))
	return start, start.AddDate(0, 0, 1)
}

// today returns now's calendar date in loc.
func today(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(orUTC(loc)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	return mood.SameDay(a, b, orUTC(loc))
}
