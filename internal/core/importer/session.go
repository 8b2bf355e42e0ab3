package importer

import (
	"time"

	"grocery-manager/internal/core/recipe"
)

// State is the import pipeline state.
type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateReady      State = "ready"
	StateFailed     State = "failed"
)

// Row is one checklist entry of a ready import session. Checked defaults to
// the inverse of Owned: items the user probably already has start unchecked.
type Row struct {
	recipe.NormalizedItem
	Checked bool `json:"checked"`
	Owned   bool `json:"owned"`
}

// Session is one run of the recipe-import pipeline:
// Idle -> Generating -> Ready|Failed, then discarded on confirm or close.
type Session struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	Rows      []Row     `json:"rows"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Session) snapshot() *Session {
	out := *s
	out.Rows = append([]Row(nil), s.Rows...)
	return &out
}
