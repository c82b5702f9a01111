package diag

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Render writes err in the form
//
//	error: semantic error
//	  --> prog.w:3:9
//	   |
//	 3 |     log(y);
//	   |         ^ undefined variable: 'y'
//
// Errors that are not a *Error, or that carry no position, are written as a
// single header line.
func Render(w io.Writer, err error, filename, src string, withColor bool) {
	redBold := newColor(withColor, color.FgRed, color.Bold)
	blue := newColor(withColor, color.FgBlue)

	var de *Error
	if !errors.As(err, &de) {
		fmt.Fprintf(w, "%s %s\n", redBold.Sprint("error:"), err)
		return
	}

	header := redBold.Sprintf("error: %s", strings.ToLower(de.Class()))
	line, ok := sourceLine(src, de.Line)
	if de.Line == 0 || !ok {
		fmt.Fprintf(w, "%s\n  %s\n", header, de.Message())
		return
	}

	num := strconv.Itoa(de.Line)
	gutter := strings.Repeat(" ", len(num))

	fmt.Fprintln(w, header)
	fmt.Fprintf(w, " %s%s %s:%d:%d\n", gutter, blue.Sprint("-->"), filename, de.Line, de.Column)
	fmt.Fprintln(w, blue.Sprintf(" %s |", gutter))
	fmt.Fprintf(w, "%s %s\n", blue.Sprintf(" %s |", num), line)
	fmt.Fprintf(w, "%s %s%s %s\n", blue.Sprintf(" %s |", gutter), caretPadding(line, de.Column), redBold.Sprint("^"), de.Message())
}

func newColor(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// sourceLine returns the 1-based line n of src without its line ending.
func sourceLine(src string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	lines := strings.Split(src, "\n")
	if n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}

// caretPadding keeps tabs from the source line so the caret lines up under
// column col regardless of tab width.
func caretPadding(line string, col int) string {
	var b strings.Builder
	for i := 0; i < col-1 && i < len(line); i++ {
		if line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
