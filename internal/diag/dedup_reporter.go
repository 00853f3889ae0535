package diag

import "migralint/internal/symbols"

type dedupKey struct {
	code   Code
	sev    Severity
	class  string
	field  string
	origin symbols.Origin
}

// DedupReporter подавляет повторные диагностики с одинаковым ключом.
// Нужен, когда хост подаёт перекрывающиеся снапшоты одного проекта.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil || r.next == nil {
		return
	}
	key := dedupKey{
		code:   d.Code,
		sev:    d.Severity,
		class:  d.Class,
		field:  d.Field,
		origin: d.Origin,
	}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(d)
}
