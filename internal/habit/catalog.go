// AngelaMos | 2026
// catalog.go

package habit

// Habit is one catalog entry.
type Habit struct {
	Label  string  `json:"label"`
	Points float64 `json:"points"`
}

// Catalog is an immutable, ordered label to points table. Points are
// copied onto log rows at insert time, so changing a catalog never
// rewrites history.
type Catalog struct {
	habits []Habit
	index  map[string]int
}

func NewCatalog(habits ...Habit) *Catalog {
	c := &Catalog{
		habits: make([]Habit, 0, len(habits)),
		index:  make(map[string]int, len(habits)),
	}
	for _, h := range habits {
		if i, ok := c.index[h.Label]; ok {
			c.habits[i] = h
			continue
		}
		c.index[h.Label] = len(c.habits)
		c.habits = append(c.habits, h)
	}
	return c
}

func Default() *Catalog {
	return NewCatalog(
		Habit{Label: "Carpooling 🚗", Points: 1.5},
		Habit{Label: "Reused Container ♻️", Points: 1.0},
		Habit{Label: "Skipped Meat 🍃", Points: 2.0},
		Habit{Label: "Used Public Transport 🚲", Points: 1.5},
		Habit{Label: "No-Plastic Day 🛍️", Points: 2.5},
		Habit{Label: "Others (Custom) 📝", Points: 1.0},
	)
}

// Habits returns a copy in catalog order.
func (c *Catalog) Habits() []Habit {
	out := make([]Habit, len(c.habits))
	copy(out, c.habits)
	return out
}

func (c *Catalog) Labels() []string {
	out := make([]string, len(c.habits))
	for i, h := range c.habits {
		out[i] = h.Label
	}
	return out
}

func (c *Catalog) Points(label string) (float64, bool) {
	i, ok := c.index[label]
	if !ok {
		return 0, false
	}
	return c.habits[i].Points, true
}

func (c *Catalog) Contains(label string) bool {
	_, ok := c.index[label]
	return ok
}
