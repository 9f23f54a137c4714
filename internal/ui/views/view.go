package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultTitle = "itemcursor"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width           int
	Height          int
	Title           string
	Items           []string
	AvailableFlags  []bool
	CurrentIndex    int
	ViewportOffset  int
	ViewportHeight  int
	FilterQuery     string
	FilterInput     string // rendered text input while the filter is being edited
	Wrap            bool
	Required        bool
	SortLabel       string
	ShowPageNumbers bool
	StatusMessage   string
	HelpView        string
}

// Renderer handles all view rendering
type Renderer struct {
	styles     *Styles
	itemRender *ItemRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:     styles,
		itemRender: NewItemRenderer(styles),
	}
}

// ReservedLines is the number of rows the chrome around the list takes:
// container padding, title, input or blank line, status line and help footer.
const ReservedLines = 9

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")

	if state.FilterInput != "" {
		content.WriteString(state.FilterInput)
		content.WriteString("\n")
	}

	if len(state.Items) == 0 {
		if state.FilterQuery != "" {
			content.WriteString(r.styles.Dim.Render("No items match the filter."))
		} else {
			content.WriteString(r.styles.Dim.Render("No items."))
		}
	} else {
		content.WriteString(r.renderList(state))
	}

	content.WriteString("\n")
	content.WriteString(r.renderStatusLine(state))

	if state.HelpView != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// renderTitleLine renders the title with the filter indicator right-aligned
func (r *Renderer) renderTitleLine(state ViewState) string {
	title := state.Title
	if title == "" {
		title = defaultTitle
	}
	logo := r.styles.Title.Render(title)
	if state.FilterQuery == "" {
		return logo
	}

	filterText := r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.FilterQuery))
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	availableWidth := termWidth - 4 // Account for main container padding
	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(filterText)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + filterText
}

// renderList renders the visible window of items with scroll indicators
func (r *Renderer) renderList(state ViewState) string {
	total := len(state.Items)
	offset := state.ViewportOffset
	if offset < 0 || offset >= total {
		offset = 0
	}
	height := state.ViewportHeight
	if height <= 0 {
		height = total
	}

	end := offset + height
	if end > total {
		end = total
	}

	var lines []string
	if offset > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", offset)))
	}
	for i := offset; i < end; i++ {
		lines = append(lines, r.itemRender.RenderItem(
			state.Items[i],
			i == state.CurrentIndex,
			isAvailable(state.AvailableFlags, i),
			state.FilterQuery,
		))
	}
	if end < total {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", total-end)))
	}
	return strings.Join(lines, "\n")
}

// renderStatusLine shows position, mode flags and transient messages
func (r *Renderer) renderStatusLine(state ViewState) string {
	var parts []string
	if state.ShowPageNumbers {
		parts = append(parts, r.styles.PageNumber.Render(PageNumber(state.CurrentIndex, len(state.Items))))
	}
	parts = append(parts, r.renderFlag("wrap", state.Wrap), r.renderFlag("required", state.Required))
	if state.SortLabel != "" {
		parts = append(parts, "sort: "+state.SortLabel)
	}
	if state.StatusMessage != "" {
		parts = append(parts, state.StatusMessage)
	}
	return r.styles.Status.Render(strings.Join(parts, "  "))
}

func (r *Renderer) renderFlag(name string, on bool) string {
	if on {
		return r.styles.FlagOn.Render("[" + name + "]")
	}
	return r.styles.Dim.Render("[no " + name + "]")
}

// PageNumber returns a "current / total" label for the cursor position.
// With no current item the position shows as "-".
func PageNumber(current, count int) string {
	if current < 0 || current >= count {
		return fmt.Sprintf("- / %d", count)
	}
	return fmt.Sprintf("%d / %d", current+1, count)
}

func isAvailable(flags []bool, index int) bool {
	if flags == nil {
		return true
	}
	return index < len(flags) && flags[index]
}
