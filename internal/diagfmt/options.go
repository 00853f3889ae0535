package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
	Max       int // обрезка вывода, не Bag; 0 — без ограничения
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludeNotes bool
	Max          int // обрезка вывода, не Bag; 0 — без ограничения
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}
