// AngelaMos | 2026
// service.go

package logbook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/greensteps/internal/core"
	"github.com/carterperez-dev/greensteps/internal/habit"
)

const DateLayout = "2006-01-02"

var (
	ErrAlreadyLogged = errors.New("already logged for this date")
	ErrUnknownHabit  = errors.New("unknown habit")
)

type Service struct {
	db      *core.Database
	repo    Repository
	catalog *habit.Catalog
	now     func() time.Time
}

func NewService(db *core.Database, catalog *habit.Catalog) *Service {
	return &Service{
		db:      db,
		repo:    NewRepository(db.DB),
		catalog: catalog,
		now:     time.Now,
	}
}

// Today formats now as a calendar day in now's location.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

func (s *Service) Today() string {
	return Today(s.now())
}

func (s *Service) Catalog() *habit.Catalog {
	return s.catalog
}

func (s *Service) HasLoggedToday(
	ctx context.Context,
	userID int64,
	date string,
) (bool, error) {
	return s.repo.ExistsForDate(ctx, userID, date)
}

func (s *Service) History(ctx context.Context, userID int64) ([]LogEntry, error) {
	return s.repo.ListByUser(ctx, userID)
}

// SubmitLog writes one row per distinct label without checking for an
// earlier submission on the same date. Prefer SubmitToday.
func (s *Service) SubmitLog(
	ctx context.Context,
	userID int64,
	date string,
	labels []string,
	notes string,
) ([]LogEntry, error) {
	entries, err := s.buildEntries(userID, date, labels, notes)
	if err != nil || len(entries) == 0 {
		return entries, err
	}

	err = core.InTx(ctx, s.db.DB, func(tx *sqlx.Tx) error {
		return insertAll(ctx, NewRepository(tx), entries)
	})
	if err != nil {
		return nil, fmt.Errorf("submit log: %w", err)
	}

	s.recordSubmit(ctx, entries)
	return entries, nil
}

// SubmitToday is SubmitLog guarded by an existence check in the same
// transaction. It returns ErrAlreadyLogged and writes nothing when the
// user already has rows for date.
func (s *Service) SubmitToday(
	ctx context.Context,
	userID int64,
	date string,
	labels []string,
	notes string,
) (entries []LogEntry, err error) {
	ctx, end := core.StartSpan(ctx, "logbook.submit_today",
		core.DBSystem(s.db.Driver),
		attribute.Int64("user_id", userID),
		attribute.String("date", date),
	)
	defer func() {
		if errors.Is(err, ErrAlreadyLogged) {
			core.AddSpanEvent(ctx, "logbook.already_logged")
			end(nil)
			return
		}
		end(err)
	}()

	entries, err = s.buildEntries(userID, date, labels, notes)
	if err != nil || len(entries) == 0 {
		return entries, err
	}

	err = core.InTxWithOptions(ctx, s.db.DB, s.db.WriteTxOptions(), func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		exists, err := repo.ExistsForDate(ctx, userID, date)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyLogged
		}

		return insertAll(ctx, repo, entries)
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyLogged) {
			return nil, err
		}
		return nil, fmt.Errorf("submit today: %w", err)
	}

	s.recordSubmit(ctx, entries)
	return entries, nil
}

func (s *Service) buildEntries(
	userID int64,
	date string,
	labels []string,
	notes string,
) ([]LogEntry, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("date %q: %w", date, core.ErrInvalidInput)
	}

	entries := make([]LogEntry, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))

	for _, label := range labels {
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}

		points, ok := s.catalog.Points(label)
		if !ok {
			return nil, fmt.Errorf("%q: %w", label, ErrUnknownHabit)
		}

		entries = append(entries, LogEntry{
			UserID:    userID,
			Date:      date,
			Habit:     label,
			Notes:     notes,
			EcoPoints: points,
		})
	}

	return entries, nil
}

func insertAll(ctx context.Context, repo Repository, entries []LogEntry) error {
	for i := range entries {
		if err := repo.Create(ctx, &entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) recordSubmit(ctx context.Context, entries []LogEntry) {
	total := 0.0
	for _, e := range entries {
		total += e.EcoPoints
	}
	core.AddSpanEvent(ctx, "logbook.submitted",
		attribute.Int("entries", len(entries)),
		attribute.Float64("eco_points", total),
	)
}
