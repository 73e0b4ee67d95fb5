// Package overtime classifies elapsed activity durations against the
// catalog's per-type limits.
package overtime

import "github.com/kcwei/breaktrack/internal/domain/catalog"

// Result describes how an elapsed duration relates to a type's limit.
type Result struct {
	IsOvertime  bool  `json:"is_overtime"`
	Overtime    int64 `json:"overtime"`     // seconds over the limit, 0 if none
	MaxDuration int64 `json:"max_duration"` // seconds
}

// Classifier computes overtime for activity durations.
type Classifier struct {
	catalog *catalog.Catalog
}

// NewClassifier creates a classifier bound to a catalog.
func NewClassifier(c *catalog.Catalog) *Classifier {
	return &Classifier{catalog: c}
}

// Classify reports whether elapsedSeconds exceeds the limit for typeID.
// Exactly at the limit is not overtime. Unknown type ids fall back to the
// catalog's default limit.
func (c *Classifier) Classify(typeID string, elapsedSeconds int64) Result {
	max := c.catalog.MaxDuration(typeID)
	over := elapsedSeconds - max
	if over < 0 {
		over = 0
	}
	return Result{
		IsOvertime:  over > 0,
		Overtime:    over,
		MaxDuration: max,
	}
}
