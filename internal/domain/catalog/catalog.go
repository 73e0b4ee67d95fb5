package catalog

import "strings"

// ActivityType describes one registered kind of tracked break.
type ActivityType struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Emoji       string `json:"emoji"`
	MaxDuration int64  `json:"max_duration"` // seconds
	ButtonLabel string `json:"button_label"`
}

// DefaultMaxDuration is the limit reported for unregistered type ids, so
// callers that skip validation degrade to a five minute allowance instead
// of failing.
const DefaultMaxDuration int64 = 300

// Catalog is a fixed registry of activity types with a stable iteration
// order equal to registration order.
type Catalog struct {
	order []ActivityType
	byID  map[string]ActivityType
}

// New builds a catalog from the given types in registration order.
func New(types ...ActivityType) *Catalog {
	c := &Catalog{
		order: make([]ActivityType, 0, len(types)),
		byID:  make(map[string]ActivityType, len(types)),
	}
	for _, t := range types {
		if _, exists := c.byID[t.ID]; exists {
			continue
		}
		c.order = append(c.order, t)
		c.byID[t.ID] = t
	}
	return c
}

// Default returns the catalog of tracked break types.
func Default() *Catalog {
	return New(
		ActivityType{
			ID:          "toilet",
			DisplayName: "上廁所",
			Emoji:       "🚽",
			MaxDuration: 360,
			ButtonLabel: "🚽 上廁所 (6分鐘)/เข้าห้องน้ำ (6 นาที)",
		},
		ActivityType{
			ID:          "smoking",
			DisplayName: "抽菸",
			Emoji:       "🚬",
			MaxDuration: 300,
			ButtonLabel: "🚬 抽菸 (5分鐘)/สูบบุหรี่",
		},
		ActivityType{
			ID:          "phone",
			DisplayName: "使用手機",
			Emoji:       "📱",
			MaxDuration: 600,
			ButtonLabel: "📱 使用手機 (10分鐘)/ใช้มือถือ",
		},
		ActivityType{
			ID:          "poop_10",
			DisplayName: "大便10",
			Emoji:       "💩",
			MaxDuration: 600,
			ButtonLabel: "💩 大便 (10分鐘)/อึ10นาที",
		},
		ActivityType{
			ID:          "poop_15",
			DisplayName: "大便15",
			Emoji:       "💩",
			MaxDuration: 900,
			ButtonLabel: "💩 大便 (15分鐘)/อึ15นาที",
		},
	)
}

// IsValid reports whether id is a registered activity type.
func (c *Catalog) IsValid(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Get returns the activity type for id.
func (c *Catalog) Get(id string) (ActivityType, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// MaxDuration returns the registered limit in seconds for id, or
// DefaultMaxDuration when id is unknown.
func (c *Catalog) MaxDuration(id string) int64 {
	if t, ok := c.byID[id]; ok {
		return t.MaxDuration
	}
	return DefaultMaxDuration
}

// All returns every registered type in registration order.
func (c *Catalog) All() []ActivityType {
	out := make([]ActivityType, len(c.order))
	copy(out, c.order)
	return out
}

// ResolveByLabel matches a free-form display label, such as the bilingual
// button text sent back by a chat client, against each type's display name
// by substring containment. The first match in catalog order wins.
func (c *Catalog) ResolveByLabel(label string) (string, bool) {
	for _, t := range c.order {
		if strings.Contains(label, t.DisplayName) {
			return t.ID, true
		}
	}
	return "", false
}
