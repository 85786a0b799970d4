package theme

import (
	"fmt"
	"io"
)

const (
	cyan    = "\033[36m"
	magenta = "\033[35m"
	yellow  = "\033[33m"
	green   = "\033[32m"
	red     = "\033[31m"
	reset   = "\033[0m"
)

// Banner returns the CLI banner.
func Banner() string {
	art := "" +
		"  ◆◇◆   " + magenta + "TRUSTSCOPE" + reset + "   ◆◇◆\n" +
		cyan + "   ┌───────────────────────────┐\n" + reset +
		cyan + "   │  followers  ·  bots  ·  ✓ │\n" + reset +
		cyan + "   └───────────────────────────┘\n" + reset +
		yellow + "     ───────────────────────────\n" + reset +
		"   account authenticity scoring\n"
	return art
}

// PrintBanner writes the banner to w.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, Banner())
}

// Colorize wraps s in the color for a risk or verdict class. Unknown
// classes are returned as is.
func Colorize(class, s string) string {
	var c string
	switch class {
	case "low", "safe", "excellent", "good":
		c = green
	case "medium", "caution", "moderate":
		c = yellow
	case "high", "danger", "risky", "dangerous":
		c = red
	default:
		return s
	}
	return c + s + reset
}
