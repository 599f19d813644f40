// AngelaMos | 2026
// service_test.go

package stats

import (
	"context"
	"fmt"
	"testing"

	"github.com/carterperez-dev/greensteps/internal/core"
	"github.com/carterperez-dev/greensteps/internal/testutil"
)

func insertLog(t *testing.T, db *core.Database, userID int64, date, habit string, points float64) {
	t.Helper()
	_, err := db.DB.ExecContext(context.Background(),
		db.DB.Rebind(`INSERT INTO logs (user_id, date, habit, notes, eco_points) VALUES (?, ?, ?, '', ?)`),
		userID, date, habit, points)
	if err != nil {
		t.Fatalf("insert log: %v", err)
	}
}

func TestDailyTotalsSingleUser(t *testing.T) {
	db := testutil.NewDatabase(t)
	uid := testutil.CreateUser(t, db, "a@x.com")
	insertLog(t, db, uid, "2024-01-01", "Carpooling 🚗", 1.5)
	insertLog(t, db, uid, "2024-01-01", "Skipped Meat 🍃", 2.0)

	svc := NewService(NewRepository(db.DB))
	ctx := context.Background()

	totals, err := svc.DailyTotals(ctx, uid)
	if err != nil {
		t.Fatalf("DailyTotals() error = %v", err)
	}
	if len(totals) != 1 || totals[0] != (DailyTotal{"2024-01-01", 3.5}) {
		t.Fatalf("DailyTotals() = %+v, want [(2024-01-01, 3.5)]", totals)
	}

	total, err := svc.TotalPoints(ctx, uid)
	if err != nil || total != 3.5 {
		t.Fatalf("TotalPoints() = (%v, %v), want (3.5, nil)", total, err)
	}

	days, err := svc.DaysLogged(ctx, uid)
	if err != nil || days != 1 {
		t.Fatalf("DaysLogged() = (%v, %v), want (1, nil)", days, err)
	}
}

func TestDailyTotalsOrderedByDate(t *testing.T) {
	db := testutil.NewDatabase(t)
	uid := testutil.CreateUser(t, db, "a@x.com")
	insertLog(t, db, uid, "2024-01-03", "h", 1)
	insertLog(t, db, uid, "2024-01-01", "h", 2)
	insertLog(t, db, uid, "2024-01-02", "h", 3)

	totals, err := NewService(NewRepository(db.DB)).DailyTotals(context.Background(), uid)
	if err != nil {
		t.Fatalf("DailyTotals() error = %v", err)
	}

	want := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	if len(totals) != len(want) {
		t.Fatalf("DailyTotals() = %+v", totals)
	}
	for i, d := range want {
		if totals[i].Date != d {
			t.Errorf("totals[%d].Date = %s, want %s", i, totals[i].Date, d)
		}
	}
}

func TestGlobalDailyTotals(t *testing.T) {
	db := testutil.NewDatabase(t)
	a := testutil.CreateUser(t, db, "a@x.com")
	b := testutil.CreateUser(t, db, "b@x.com")
	insertLog(t, db, a, "2024-02-01", "Reused Container ♻️", 1.0)
	insertLog(t, db, b, "2024-02-01", "Others (Custom) 📝", 1.0)

	svc := NewService(NewRepository(db.DB))
	totals, err := svc.GlobalDailyTotals(context.Background())
	if err != nil {
		t.Fatalf("GlobalDailyTotals() error = %v", err)
	}
	if len(totals) != 1 || totals[0] != (DailyTotal{"2024-02-01", 2.0}) {
		t.Fatalf("GlobalDailyTotals() = %+v, want [(2024-02-01, 2.0)]", totals)
	}

	mine, err := svc.DailyTotals(context.Background(), a)
	if err != nil || len(mine) != 1 || mine[0].TotalPoints != 1.0 {
		t.Fatalf("DailyTotals(a) = (%+v, %v), want only a's points", mine, err)
	}
}

func TestEmptyResults(t *testing.T) {
	db := testutil.NewDatabase(t)
	uid := testutil.CreateUser(t, db, "a@x.com")
	svc := NewService(NewRepository(db.DB))
	ctx := context.Background()

	summary, err := svc.Summary(ctx, uid)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if len(summary.DailyTotals) != 0 || summary.TotalPoints != 0 || summary.DaysLogged != 0 || len(summary.Badges) != 0 {
		t.Fatalf("Summary() = %+v, want empty", summary)
	}

	global, err := svc.GlobalDailyTotals(ctx)
	if err != nil || global == nil || len(global) != 0 {
		t.Fatalf("GlobalDailyTotals() = (%v, %v), want empty non-nil", global, err)
	}
}

func TestSummaryAwardsBadges(t *testing.T) {
	db := testutil.NewDatabase(t)
	uid := testutil.CreateUser(t, db, "a@x.com")
	for day := 1; day <= 7; day++ {
		insertLog(t, db, uid, fmt.Sprintf("2024-03-%02d", day*3), "h", 1)
	}
	insertLog(t, db, uid, "2024-03-03", "h2", 1)

	summary, err := NewService(NewRepository(db.DB)).Summary(context.Background(), uid)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.DaysLogged != 7 || summary.TotalPoints != 8 {
		t.Fatalf("Summary() days=%d total=%v, want 7 and 8", summary.DaysLogged, summary.TotalPoints)
	}
	if len(summary.Badges) != 1 || summary.Badges[0] != BadgeSevenDay {
		t.Fatalf("Summary().Badges = %v, want [7-day]", summary.Badges)
	}
}

func TestTotalsSkipLegacyNulls(t *testing.T) {
	db := testutil.NewLegacyDatabase(t)
	uid := testutil.CreateUser(t, db, "old@x.com")
	svc := NewService(NewRepository(db.DB))
	ctx := context.Background()

	rows := []struct {
		date   any
		points any
	}{
		{"2023-05-01", 2.0},
		{"2023-05-01", nil},
		{"2023-05-02", nil},
		{nil, 4.0},
	}
	for _, r := range rows {
		if _, err := db.DB.ExecContext(ctx,
			`INSERT INTO logs (user_id, date, habit, eco_points) VALUES (?, ?, 'x', ?)`,
			uid, r.date, r.points); err != nil {
			t.Fatalf("insert legacy log: %v", err)
		}
	}

	summary, err := svc.Summary(ctx, uid)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	want := []DailyTotal{{Date: "2023-05-01", TotalPoints: 2.0}, {Date: "2023-05-02", TotalPoints: 0}}
	if len(summary.DailyTotals) != len(want) {
		t.Fatalf("DailyTotals = %+v, want %+v", summary.DailyTotals, want)
	}
	for i := range want {
		if summary.DailyTotals[i] != want[i] {
			t.Fatalf("DailyTotals[%d] = %+v, want %+v", i, summary.DailyTotals[i], want[i])
		}
	}
	if summary.TotalPoints != 2.0 || summary.DaysLogged != 2 {
		t.Fatalf("Summary() = %+v, want 2 points over 2 days", summary)
	}

	global, err := svc.GlobalDailyTotals(ctx)
	if err != nil || len(global) != 2 {
		t.Fatalf("GlobalDailyTotals() = (%v, %v), want 2 days", global, err)
	}
}
