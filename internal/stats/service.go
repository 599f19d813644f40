// AngelaMos | 2026
// service.go

package stats

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/greensteps/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) DailyTotals(ctx context.Context, userID int64) ([]DailyTotal, error) {
	return s.repo.DailyTotals(ctx, userID)
}

func (s *Service) TotalPoints(ctx context.Context, userID int64) (float64, error) {
	totals, err := s.repo.DailyTotals(ctx, userID)
	if err != nil {
		return 0, err
	}
	return sumTotals(totals), nil
}

func (s *Service) DaysLogged(ctx context.Context, userID int64) (int, error) {
	return s.repo.DaysLogged(ctx, userID)
}

func (s *Service) GlobalDailyTotals(ctx context.Context) (totals []DailyTotal, err error) {
	ctx, end := core.StartSpan(ctx, "stats.global_daily_totals")
	defer func() { end(err) }()

	totals, err = s.repo.GlobalDailyTotals(ctx)
	if err != nil {
		return nil, err
	}

	core.AddSpanEvent(ctx, "stats.days", attribute.Int("days", len(totals)))
	return totals, nil
}

func (s *Service) Summary(ctx context.Context, userID int64) (_ *Summary, err error) {
	ctx, end := core.StartSpan(ctx, "stats.summary", attribute.Int64("user_id", userID))
	defer func() { end(err) }()

	totals, err := s.repo.DailyTotals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	days, err := s.repo.DaysLogged(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	return &Summary{
		DailyTotals: totals,
		TotalPoints: sumTotals(totals),
		DaysLogged:  days,
		Badges:      Badges(days),
	}, nil
}

func sumTotals(totals []DailyTotal) float64 {
	var sum float64
	for _, t := range totals {
		sum += t.TotalPoints
	}
	return sum
}
