package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

// render strips styling so assertions don't depend on the color profile.
func render(r *Renderer, state ViewState) string {
	return ansi.Strip(r.Render(state))
}

func TestPageNumber(t *testing.T) {
	assert.Equal(t, "1 / 3", PageNumber(0, 3))
	assert.Equal(t, "3 / 3", PageNumber(2, 3))
	assert.Equal(t, "- / 3", PageNumber(-1, 3))
	assert.Equal(t, "- / 0", PageNumber(0, 0))
}

func TestRenderShowsItemsAndCursor(t *testing.T) {
	r := NewRenderer()
	out := render(r, ViewState{
		Width:          80,
		Title:          "Pick one",
		Items:          []string{"alpha", "beta", "gamma"},
		CurrentIndex:   1,
		ViewportHeight: 10,
	})

	assert.Contains(t, out, "Pick one")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, cursorMarker+"beta")
	assert.Contains(t, out, "gamma")
	assert.NotContains(t, out, "more above")
	assert.NotContains(t, out, "more below")
}

func TestRenderDefaultTitle(t *testing.T) {
	out := render(NewRenderer(), ViewState{Items: []string{"a"}, CurrentIndex: -1})
	assert.Contains(t, out, defaultTitle)
	assert.NotContains(t, out, cursorMarker)
}

func TestRenderScrollIndicators(t *testing.T) {
	items := []string{"i0", "i1", "i2", "i3", "i4", "i5"}
	out := render(NewRenderer(), ViewState{
		Items:          items,
		CurrentIndex:   3,
		ViewportOffset: 2,
		ViewportHeight: 2,
	})

	assert.Contains(t, out, "↑ 2 more above ↑")
	assert.Contains(t, out, "↓ 2 more below ↓")
	assert.NotContains(t, out, "i1")
	assert.Contains(t, out, "i2")
	assert.Contains(t, out, "i3")
	assert.NotContains(t, out, "i4")
}

func TestRenderEmptyStates(t *testing.T) {
	r := NewRenderer()
	assert.Contains(t, render(r, ViewState{CurrentIndex: -1}), "No items.")
	assert.Contains(t, render(r, ViewState{CurrentIndex: -1, FilterQuery: "zz"}), "No items match the filter.")
}

func TestRenderStatusLine(t *testing.T) {
	out := render(NewRenderer(), ViewState{
		Items:           []string{"a", "b"},
		CurrentIndex:    1,
		ShowPageNumbers: true,
		Wrap:            true,
		SortLabel:       "name",
		StatusMessage:   "hello",
	})

	assert.Contains(t, out, "2 / 2")
	assert.Contains(t, out, "[wrap]")
	assert.Contains(t, out, "[no required]")
	assert.Contains(t, out, "sort: name")
	assert.Contains(t, out, "hello")
}

func TestRenderFilterIndicator(t *testing.T) {
	out := render(NewRenderer(), ViewState{
		Width:        60,
		Items:        []string{"apple", "banana"},
		CurrentIndex: 0,
		FilterQuery:  "an",
		FilterInput:  "/an",
	})

	assert.Contains(t, out, "[Filter: an]")
	assert.Contains(t, out, "/an")
	assert.Contains(t, out, "banana")
}

func TestRenderItemUnavailableIsNotHighlighted(t *testing.T) {
	r := NewItemRenderer(NewStyles())
	line := ansi.Strip(r.RenderItem("apple", false, false, "app"))
	assert.True(t, strings.HasPrefix(line, blankMarker))
	assert.Contains(t, line, "apple")
}

func TestHighlightMatch(t *testing.T) {
	r := NewItemRenderer(NewStyles())
	plain := lipgloss.NewStyle()
	assert.Contains(t, ansi.Strip(r.highlightMatch("Pineapple", "APP", plain, plain)), "app")
	assert.Equal(t, plain.Render("kiwi"), r.highlightMatch("kiwi", "x", plain, plain))
}
