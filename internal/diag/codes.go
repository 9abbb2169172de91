package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo         Code = 1000
	LexUnknownChar  Code = 1001
	LexBadNumber    Code = 1004
	LexTokenTooLong Code = 1005

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynMissingToken       Code = 2002
	SynSyntaxError        Code = 2003
	SynInvalidParameter   Code = 2004
	SynGeneric            Code = 2005
	SynUnexpectedTopLevel Code = 2101

	// Семантические
	SemaInfo             Code = 3000
	SemaError            Code = 3001
	SemaDuplicateSymbol  Code = 3002
	SemaUnresolvedSymbol Code = 3005
	SemaTypeMismatch     Code = 3010
	SemaArgCount         Code = 3011
	SemaReturnMismatch   Code = 3012
	SemaMissingReturn    Code = 3013
	SemaUnknownType      Code = 3014

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Проект
	ProjInfo        Code = 5000
	ProjBadManifest Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexBadNumber:          "Malformed number literal",
	LexTokenTooLong:       "Token too long",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynMissingToken:       "Missing token",
	SynSyntaxError:        "Syntax error",
	SynInvalidParameter:   "Invalid parameter",
	SynGeneric:            "Parser error",
	SynUnexpectedTopLevel: "Unsupported top-level construct",
	SemaInfo:              "Semantic information",
	SemaError:             "Semantic error",
	SemaDuplicateSymbol:   "Duplicate symbol",
	SemaUnresolvedSymbol:  "Unresolved symbol",
	SemaTypeMismatch:      "Type mismatch",
	SemaArgCount:          "Wrong number of arguments",
	SemaReturnMismatch:    "Return type mismatch",
	SemaMissingReturn:     "Missing return in function",
	SemaUnknownType:       "Unknown type",
	IOLoadFileError:       "I/O load file error",
	ProjInfo:              "Project information",
	ProjBadManifest:       "Invalid project manifest",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
