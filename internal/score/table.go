package score

import (
	"fmt"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// Table holds the current rating of every item in a tournament, keyed by the
// item's literal text, and remembers the order items were added.
type Table struct {
	engine  *Engine
	order   []string
	ratings map[string]model.Rating
}

// NewTable seeds every item with the engine's prior. Duplicates are ignored.
func (e *Engine) NewTable(items []string) *Table {
	t := &Table{
		engine:  e,
		order:   make([]string, 0, len(items)),
		ratings: make(map[string]model.Rating, len(items)),
	}
	for _, item := range items {
		if _, ok := t.ratings[item]; ok {
			continue
		}
		t.order = append(t.order, item)
		t.ratings[item] = e.Initial()
	}
	return t
}

// Record applies one judged outcome
func (t *Table) Record(winner, loser string) error {
	w, ok := t.ratings[winner]
	if !ok {
		return fmt.Errorf("record outcome: unknown item %q", winner)
	}
	l, ok := t.ratings[loser]
	if !ok {
		return fmt.Errorf("record outcome: unknown item %q", loser)
	}
	if winner == loser {
		return fmt.Errorf("record outcome: item %q cannot play itself", winner)
	}
	t.ratings[winner], t.ratings[loser] = t.engine.Rate1v1(w, l)
	return nil
}

// Get returns the current rating of an item
func (t *Table) Get(item string) (model.Rating, bool) {
	r, ok := t.ratings[item]
	return r, ok
}

// Items returns the items in insertion order
func (t *Table) Items() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of rated items
func (t *Table) Len() int {
	return len(t.order)
}
