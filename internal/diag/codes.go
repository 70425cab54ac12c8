package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Синтаксические: структура вызовов и скобок
	SynInfo                  Code = 2000
	SynUnclosedBracket       Code = 2001
	SynUnclosedBrace         Code = 2002
	SynMissingEscapeBrackets Code = 2003
	SynArgParseFailure       Code = 2004

	// Семантические: проверка по реестру сигнатур
	SemaInfo              Code = 3000
	SemaUnknownFunction   Code = 3001
	SemaBracketsForbidden Code = 3002
	SemaBracketsRequired  Code = 3003
	SemaArgCountTooFew    Code = 3004
	SemaArgCountTooMany   Code = 3005

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:              "Unknown error",
		SynInfo:                  "Syntax information",
		SynUnclosedBracket:       "Unclosed bracket",
		SynUnclosedBrace:         "Unclosed brace",
		SynMissingEscapeBrackets: "Escape function without brackets",
		SynArgParseFailure:       "Failed to parse call arguments",
		SemaInfo:                 "Semantic information",
		SemaUnknownFunction:      "Unknown function",
		SemaBracketsForbidden:    "Function does not accept brackets",
		SemaBracketsRequired:     "Function requires brackets",
		SemaArgCountTooFew:       "Too few arguments",
		SemaArgCountTooMany:      "Too many arguments",
		IOLoadFileError:          "I/O load file error",
		ObsInfo:                  "Observability information",
		ObsTimings:               "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return "Unknown error"
	}
	return desc
}

func (c Code) String() string {
	return c.ID()
}
