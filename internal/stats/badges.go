// AngelaMos | 2026
// badges.go

package stats

// Badge is derived from the number of distinct days logged. Nothing is
// stored.
type Badge string

const (
	BadgeSevenDay  Badge = "7-day"
	BadgeThirtyDay Badge = "30-day"
)

var badgeThresholds = []struct {
	badge Badge
	days  int
	title string
}{
	{BadgeSevenDay, 7, "🏅 Badge Earned: 7-Day Streak!"},
	{BadgeThirtyDay, 30, "🏆 Badge Earned: 30-Day Eco-Warrior!"},
}

func (b Badge) Title() string {
	for _, t := range badgeThresholds {
		if t.badge == b {
			return t.title
		}
	}
	return string(b)
}

// Badges counts distinct days, not consecutive ones.
func Badges(daysLogged int) []Badge {
	earned := make([]Badge, 0, len(badgeThresholds))
	for _, t := range badgeThresholds {
		if daysLogged >= t.days {
			earned = append(earned, t.badge)
		}
	}
	return earned
}
