package outwriter

import (
	"os"

	"golang.org/x/term"
)

// getMaxUsersWidth calculates the maximum width of the users column in the
// sprint table based on terminal width.
func getMaxUsersWidth() int {
	termWidth := 80 // Conservative default for narrow terminals and CI
	if detected, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && detected > 0 {
		termWidth = detected
	}
	return clampUsersWidth(termWidth)
}

// clampUsersWidth reserves room for the fixed columns and keeps the rest within bounds.
func clampUsersWidth(termWidth int) int {
	// Sprint + State + Start + End + Planned + Earned + Cost + SPI + Label with borders/padding
	const baseWidth = 110
	available := termWidth - baseWidth
	if available < 20 {
		return 20
	}
	if available > 60 {
		return 60
	}
	return available
}
