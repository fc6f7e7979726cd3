package splitview

import "github.com/charmbracelet/bubbles/help"

// HelpBindings returns the help.KeyMap for the current interaction mode.
func HelpBindings(menuOpen bool) help.KeyMap {
	if menuOpen {
		return MenuKeyMap()
	}
	return NavKeyMap()
}
