package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	cursorMarker = "❯ "
	blankMarker  = "  "
)

// ItemRenderer handles rendering of list items
type ItemRenderer struct {
	styles *Styles
}

// NewItemRenderer creates a new item renderer
func NewItemRenderer(styles *Styles) *ItemRenderer {
	return &ItemRenderer{
		styles: styles,
	}
}

// RenderItem renders one row of the list box
func (r *ItemRenderer) RenderItem(item string, isCurrent, isAvailable bool, query string) string {
	base := lipgloss.NewStyle()
	if isCurrent {
		base = r.styles.SelectionBg
	}
	if !isAvailable {
		base = base.Inherit(r.styles.Unavailable)
	}

	marker := blankMarker
	if isCurrent {
		marker = r.styles.Marker.Render(cursorMarker)
	}

	text := base.Render(item)
	if isAvailable && query != "" {
		text = r.highlightMatch(item, query, base.Inherit(r.styles.Highlight), base)
	}
	return marker + text
}

// highlightMatch highlights matching text within a string
func (r *ItemRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	index := strings.Index(strings.ToLower(text), strings.ToLower(query))
	if index == -1 || index+len(query) > len(text) {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}
	return strings.Join(result, "")
}
