package diag

import (
	"migralint/internal/symbols"
)

type Note struct {
	Origin symbols.Origin
	Msg    string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Class    string
	Field    string
	Origin   symbols.Origin
	Notes    []Note
}
