package cli

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the CLI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Rooms: cyan
	colorRoom = color.New(color.FgCyan)

	// Instructors: magenta
	colorInstructor = color.New(color.FgMagenta)

	// Equipment: yellow
	colorEquipment = color.New(color.FgYellow)

	// Totals and positive figures: green
	colorStats = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if max <= 1 || len([]rune(s)) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// formatCategory colors a category tag.
func formatCategory(cat string) string {
	switch cat {
	case "room":
		return colorRoom.Sprint("[room]")
	case "instructor":
		return colorInstructor.Sprint("[instructor]")
	case "equipment":
		return colorEquipment.Sprint("[equipment]")
	default:
		return "[" + cat + "]"
	}
}
