package score

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// z-score of a two-sided 95% interval
const ci95Z = 1.96

// TieBreak orders items whose posterior means are exactly equal
type TieBreak string

const (
	TieBreakDiscovery TieBreak = "discovery" // keep the order items were first seen
	TieBreakDeviation TieBreak = "deviation" // more certain rating first
)

// ParseTieBreak validates a configured tie-break name. Empty means discovery.
func ParseTieBreak(s string) (TieBreak, error) {
	switch TieBreak(strings.ToLower(strings.TrimSpace(s))) {
	case "", TieBreakDiscovery:
		return TieBreakDiscovery, nil
	case TieBreakDeviation:
		return TieBreakDeviation, nil
	default:
		return "", fmt.Errorf("unknown tie-break %q (want discovery or deviation)", s)
	}
}

// Publish ranks every item in the table by descending mean. labels maps item
// text to its display label; items without a label get an empty one.
func Publish(t *Table, labels map[string]string, tieBreak TieBreak) []model.RankedHeadline {
	items := t.Items()

	slices.SortStableFunc(items, func(a, b string) int {
		ra, rb := t.ratings[a], t.ratings[b]
		if c := cmp.Compare(rb.Mu, ra.Mu); c != 0 {
			return c
		}
		if tieBreak == TieBreakDeviation {
			return cmp.Compare(ra.Sigma, rb.Sigma)
		}
		return 0
	})

	ranked := make([]model.RankedHeadline, len(items))
	for i, item := range items {
		r := t.ratings[item]
		ranked[i] = model.RankedHeadline{
			Rank:      i + 1,
			Label:     labels[item],
			Headline:  item,
			Mean:      r.Mu,
			Deviation: r.Sigma,
			CI95:      ci95Z * r.Sigma,
		}
	}
	return ranked
}
