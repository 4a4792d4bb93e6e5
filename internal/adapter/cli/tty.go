package cli

import (
	"os"

	"golang.org/x/term"
)

// IsTTY checks if the given file descriptor is a terminal.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// IsInteractive checks if stdin is a TTY. The ask command only starts
// a conversation loop when the user can actually type follow-ups;
// piped input and CI runs get the single-shot path.
func IsInteractive() bool {
	return IsTTY(os.Stdin.Fd())
}
