// Package ui holds the pterm styling shared by the command-line output
package ui

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/pterm/pterm"
)

type palette struct {
	green, blue, red, highlight pterm.Color
}

var (
	lightPalette = palette{
		green:     pterm.FgGreen,
		blue:      pterm.FgBlue,
		red:       pterm.FgRed,
		highlight: pterm.FgBlack,
	}

	darkPalette = palette{
		green:     pterm.FgLightGreen,
		blue:      pterm.FgLightBlue,
		red:       pterm.FgLightRed,
		highlight: pterm.FgLightWhite,
	}

	dark atomic.Bool
)

// SetDarkTheme switches the colour helpers to the light variants that read
// well on a dark terminal.
func SetDarkTheme(on bool) {
	dark.Store(on)
}

func current() palette {
	if dark.Load() {
		return darkPalette
	}

	return lightPalette
}

func Green(a any) string {
	return current().green.Sprint(a)
}

func Blue(a any) string {
	return current().blue.Sprint(a)
}

func Red(a any) string {
	return current().red.Sprint(a)
}

// Highlight makes a value stand out from the surrounding text.
func Highlight(a any) string {
	return current().highlight.Sprint(a)
}

// Setup configures the pterm printers. Styling is stripped entirely when
// noColor is set.
func Setup(noColor bool) {
	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if !noColor {
		return
	}

	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
}

// PrintTable writes data as a boxed table whose first row is the header.
func PrintTable(w io.Writer, data [][]string) error {
	table := pterm.DefaultTable.
		WithBoxed().
		WithHasHeader().
		WithData(data)

	str, err := table.Srender()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, str)

	return err
}

// Success reports a completed action on w.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, pterm.Success.Sprintf(format, args...))
}

// Error reports err on w.
func Error(w io.Writer, err error) {
	fmt.Fprintln(w, pterm.Error.Sprint(err))
}
