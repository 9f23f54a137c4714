package logic

import (
	"sort"
	"strings"
)

// SortMode represents different sort modes
type SortMode int

const (
	SortOriginal SortMode = iota
	SortByName
	SortByNameDesc
)

// String returns the label shown in the status line
func (m SortMode) String() string {
	switch m {
	case SortByName:
		return "name"
	case SortByNameDesc:
		return "name desc"
	default:
		return "original"
	}
}

// Next cycles to the following sort mode
func (m SortMode) Next() SortMode {
	return (m + 1) % 3
}

// SortItems returns a sorted copy of items. The input is never modified so
// it can still serve as the original order.
func SortItems(items []string, mode SortMode) []string {
	sorted := append([]string(nil), items...)
	switch mode {
	case SortByName:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i]) < strings.ToLower(sorted[j])
		})
	case SortByNameDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i]) > strings.ToLower(sorted[j])
		})
	}
	return sorted
}
