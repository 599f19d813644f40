// AngelaMos | 2026
// badges_test.go

package stats

import (
	"slices"
	"testing"
)

func TestBadges(t *testing.T) {
	tests := []struct {
		days int
		want []Badge
	}{
		{0, []Badge{}},
		{6, []Badge{}},
		{7, []Badge{BadgeSevenDay}},
		{29, []Badge{BadgeSevenDay}},
		{30, []Badge{BadgeSevenDay, BadgeThirtyDay}},
		{100, []Badge{BadgeSevenDay, BadgeThirtyDay}},
	}
	for _, tt := range tests {
		if got := Badges(tt.days); !slices.Equal(got, tt.want) {
			t.Errorf("Badges(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestBadgeTitles(t *testing.T) {
	if got := BadgeSevenDay.Title(); got != "🏅 Badge Earned: 7-Day Streak!" {
		t.Errorf("7-day title = %q", got)
	}
	if got := BadgeThirtyDay.Title(); got != "🏆 Badge Earned: 30-Day Eco-Warrior!" {
		t.Errorf("30-day title = %q", got)
	}
}
