package input

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

var _ help.KeyMap = KeyMap{}
var _ help.KeyMap = FilterKeyMap{}

func TestDefaultKeyMapMatches(t *testing.T) {
	k := DefaultKeyMap()

	cases := []struct {
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, k.Up},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")}, k.Up},
		{tea.KeyMsg{Type: tea.KeyDown}, k.Down},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, k.Down},
		{tea.KeyMsg{Type: tea.KeyHome}, k.Home},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")}, k.End},
		{tea.KeyMsg{Type: tea.KeyPgDown}, k.PageDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, k.Choose},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, k.Quit},
		{tea.KeyMsg{Type: tea.KeyEsc}, k.ClearFilter},
	}
	for _, tc := range cases {
		assert.True(t, key.Matches(tc.msg, tc.binding), tc.msg.String())
	}
	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, k.Quit))
}

func TestFullHelpCoversEveryBinding(t *testing.T) {
	k := DefaultKeyMap()
	count := 0
	for _, column := range k.FullHelp() {
		count += len(column)
	}
	assert.Equal(t, 14, count)
}
