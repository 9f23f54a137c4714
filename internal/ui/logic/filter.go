package logic

import (
	"strings"

	"github.com/pkg/errors"
)

// FilterMode controls what happens to items that don't match the query
type FilterMode string

const (
	// FilterDim keeps every item but marks non-matching ones unavailable
	FilterDim FilterMode = "dim"
	// FilterHide removes non-matching items from the collection
	FilterHide FilterMode = "hide"
)

// ParseFilterMode validates a filter mode name
func ParseFilterMode(s string) (FilterMode, error) {
	switch mode := FilterMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case FilterDim, FilterHide:
		return mode, nil
	case "":
		return FilterDim, nil
	default:
		return "", errors.Errorf("unknown filter mode %q (want dim or hide)", s)
	}
}

// SearchFilter derives the cursor's collection and availability mask from a
// source list, a set of permanently unavailable items and a query.
type SearchFilter struct {
	source      []string
	unavailable map[string]bool
	mode        FilterMode
	query       string
}

// NewSearchFilter creates a new search filter
func NewSearchFilter(source []string, unavailable []string, mode FilterMode) *SearchFilter {
	sf := &SearchFilter{
		source:      source,
		unavailable: make(map[string]bool, len(unavailable)),
		mode:        mode,
	}
	for _, item := range unavailable {
		sf.unavailable[item] = true
	}
	return sf
}

// SetSource replaces the unfiltered items
func (sf *SearchFilter) SetSource(source []string) {
	sf.source = source
}

// Source returns the unfiltered items
func (sf *SearchFilter) Source() []string {
	return sf.source
}

// SetQuery updates the filter query
func (sf *SearchFilter) SetQuery(query string) {
	sf.query = query
}

// Query returns the active query
func (sf *SearchFilter) Query() string {
	return sf.query
}

// Mode returns the filter mode
func (sf *SearchFilter) Mode() FilterMode {
	return sf.mode
}

// Active reports whether a query is set
func (sf *SearchFilter) Active() bool {
	return sf.query != ""
}

// MatchesFilter checks if an item matches the given filter query
func MatchesFilter(item string, filterQuery string) bool {
	if filterQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item), strings.ToLower(filterQuery))
}

// Apply returns the collection and availability mask for the cursor. flags
// is nil when every item is available. Both slices are freshly allocated.
func (sf *SearchFilter) Apply() (items []string, flags []bool) {
	items = make([]string, 0, len(sf.source))
	for _, item := range sf.source {
		if sf.mode == FilterHide && !MatchesFilter(item, sf.query) {
			continue
		}
		items = append(items, item)
	}

	allAvailable := true
	flags = make([]bool, len(items))
	for i, item := range items {
		flags[i] = !sf.unavailable[item] && MatchesFilter(item, sf.query)
		if !flags[i] {
			allAvailable = false
		}
	}
	if allAvailable {
		return items, nil
	}
	return items, flags
}

// MatchCount returns how many source items match the query
func (sf *SearchFilter) MatchCount() int {
	count := 0
	for _, item := range sf.source {
		if MatchesFilter(item, sf.query) {
			count++
		}
	}
	return count
}
