package ui

import (
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Confirm asks the operator a yes/no question. When stdin is not a
// terminal the default answer is returned so non-interactive runs proceed
// deterministically.
func Confirm(title string, def bool) (bool, error) {
	if !Interactive() {
		return def, nil
	}

	answer := def
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&answer),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return answer, nil
}

// Interactive reports whether stdin is a terminal the operator can answer
// prompts on.
func Interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
