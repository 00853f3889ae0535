package diagfmt

import (
	"encoding/json"
	"io"

	"migralint/internal/diag"
	"migralint/internal/symbols"
)

// LocationJSON представляет местоположение класса для JSON
type LocationJSON struct {
	File string `json:"file,omitempty"`
	Line uint32 `json:"line,omitempty"`
	Col  uint32 `json:"col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Class    string        `json:"class,omitempty"`
	Field    string        `json:"field,omitempty"`
	Location *LocationJSON `json:"location,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(origin symbols.Origin) *LocationJSON {
	if origin.IsZero() {
		return nil
	}
	return &LocationJSON{
		File: origin.File,
		Line: origin.Line,
		Col:  origin.Col,
	}
}

// JSON пишет диагностики (ожидается bag.Sort() заранее) в стабильном
// машинном формате.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	out := DiagnosticsOutput{
		Diagnostics: []DiagnosticJSON{},
	}
	if bag != nil {
		items := bag.Items()
		out.Count = len(items)
		if opts.Max > 0 && len(items) > opts.Max {
			items = items[:opts.Max]
		}
		for _, d := range items {
			dj := DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.Code.ID(),
				Message:  d.Message,
				Class:    d.Class,
				Field:    d.Field,
				Location: makeLocation(d.Origin),
			}
			if opts.IncludeNotes {
				for _, note := range d.Notes {
					dj.Notes = append(dj.Notes, NoteJSON{
						Message:  note.Msg,
						Location: makeLocation(note.Origin),
					})
				}
			}
			out.Diagnostics = append(out.Diagnostics, dj)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
