package diag

import (
	"fmt"
)

type Code uint16

const (
	// Зарезервировано под неклассифицированные ошибки
	UnknownCode Code = 0

	// Снапшоты (загрузка дампов классов)
	SnapInfo         Code = 1000
	SnapBadSchema    Code = 1001
	SnapBadClass     Code = 1002
	SnapBadArg       Code = 1003
	SnapDuplicateKey Code = 1004

	// Правила миграции
	MigInfo              Code = 2000
	MigMissingAnnotation Code = 2001
	MigMissingField      Code = 2002
	MigInvalidField      Code = 2003
	MigDuplicateVersion  Code = 2004
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	SnapInfo:         "snapshot info",
	SnapBadSchema:    "unsupported snapshot schema version",
	SnapBadClass:     "malformed class entry in snapshot",
	SnapBadArg:       "unsupported annotation argument value",
	SnapDuplicateKey: "duplicate annotation argument key",

	MigInfo:              "migration info",
	MigMissingAnnotation: "migratable class without serialized-id annotation",
	MigMissingField:      "serialized-id annotation parameter missing",
	MigInvalidField:      "serialized-id annotation parameter invalid",
	MigDuplicateVersion:  "duplicate serialized version",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SNAP%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("MIG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
