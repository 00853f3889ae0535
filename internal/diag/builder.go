package diag

import "migralint/internal/symbols"

func New(sev Severity, code Code, class string, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Class:    class,
		Message:  msg,
		Notes:    nil,
	}
}

func NewError(code Code, class string, msg string) Diagnostic {
	return New(SevError, code, class, msg)
}

func (d Diagnostic) WithField(field string) Diagnostic {
	d.Field = field
	return d
}

func (d Diagnostic) WithOrigin(origin symbols.Origin) Diagnostic {
	d.Origin = origin
	return d
}

func (d Diagnostic) WithNote(origin symbols.Origin, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Origin: origin, Msg: msg})
	return d
}
