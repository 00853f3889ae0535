package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"migralint/internal/diag"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	codeColor = color.New(color.FgWhite, color.Bold)
	noteColor = color.New(color.FgBlue)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем Notes с отступом. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	if bag == nil {
		return
	}
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	for _, d := range items {
		writePretty(w, d, opts)
	}
	if opts.Max > 0 && bag.Len() > opts.Max {
		fmt.Fprintf(w, "... and %d more\n", bag.Len()-opts.Max)
	}
}

func writePretty(w io.Writer, d diag.Diagnostic, opts PrettyOpts) {
	sev := d.Severity.String()
	code := d.Code.ID()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
		code = codeColor.Sprint(code)
	}
	if d.Origin.IsZero() {
		fmt.Fprintf(w, "%s %s: %s\n", sev, code, d.Message)
	} else {
		fmt.Fprintf(w, "%s: %s %s: %s\n", d.Origin.String(), sev, code, d.Message)
	}
	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		label := "note"
		if opts.Color {
			label = noteColor.Sprint(label)
		}
		if note.Origin.IsZero() {
			fmt.Fprintf(w, "  %s: %s\n", label, note.Msg)
		} else {
			fmt.Fprintf(w, "  %s: %s: %s\n", note.Origin.String(), label, note.Msg)
		}
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	}
	return infoColor
}
