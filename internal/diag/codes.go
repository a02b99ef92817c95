package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1002
	LexBadNumber                Code = 1003
	LexTokenTooLong             Code = 1004

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectSemicolon    Code = 2003
	SynExpectIdentifier   Code = 2004
	SynExpectExpression   Code = 2005
	SynUnexpectedTopLevel Code = 2006
	SynMissingPunctuation Code = 2007
	SynMissingOption      Code = 2008
	SynInvalidOption      Code = 2009
	SynEmptyList          Code = 2010
	SynUnsafeValue        Code = 2011
	SynRefWithoutUnsafe   Code = 2012
	SynUnknownSize        Code = 2013
	SynInvalidSize        Code = 2014
	SynMissingIdentifier  Code = 2015
	SynBadRange           Code = 2016
	SynIntOutOfRange      Code = 2017

	// Семантические
	SemaInfo             Code = 3000
	SemaUnresolvedSymbol Code = 3001
	SemaDuplicateSymbol  Code = 3002
	SemaUseAfterMove     Code = 3003
	SemaSelfMove         Code = 3004
	SemaBorrowOfTarget   Code = 3005
	SemaNegativeBound    Code = 3006
	SemaNonScalarElement Code = 3007
	SemaNegativeSize     Code = 3008
	SemaRepeatTooLarge   Code = 3009

	// Пакетное исполнение
	BatInfo             Code = 4000
	BatLengthMismatch   Code = 4001
	BatRegionOutOfRange Code = 4002
	BatNotCloneable     Code = 4003
	BatInternal         Code = 4004

	IOLoadFileError  Code = 5001
	IOCacheError     Code = 5002
	IOManifestError  Code = 5003
	IOWriteFileError Code = 5004

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number",
		LexTokenTooLong:             "Token too long",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnclosedDelimiter:        "Unclosed delimiter",
		SynExpectSemicolon:          "Expected semicolon",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectExpression:         "Expected expression",
		SynUnexpectedTopLevel:       "Unexpected top-level construct",
		SynMissingPunctuation:       "Punctuation is missing",
		SynMissingOption:            "Transfer option is missing",
		SynInvalidOption:            "Invalid transfer option",
		SynEmptyList:                "Empty value list",
		SynUnsafeValue:              "Moving values into a slice is safe",
		SynRefWithoutUnsafe:         "Copying arbitrary references is unsafe",
		SynUnknownSize:              "Unknown size",
		SynInvalidSize:              "Invalid size",
		SynMissingIdentifier:        "Missing identifier",
		SynBadRange:                 "Malformed range",
		SynIntOutOfRange:            "Integer literal out of range",
		SemaInfo:                    "Semantic information",
		SemaUnresolvedSymbol:        "Unresolved symbol",
		SemaDuplicateSymbol:         "Duplicate symbol",
		SemaUseAfterMove:            "Use of moved value",
		SemaSelfMove:                "Buffer moved into itself",
		SemaBorrowOfTarget:          "Target buffer borrowed as source",
		SemaNegativeBound:           "Negative range bound",
		SemaNonScalarElement:        "List element is not a scalar",
		SemaNegativeSize:            "Negative declared size",
		SemaRepeatTooLarge:          "Repeat count too large",
		BatInfo:                     "Batch information",
		BatLengthMismatch:           "Length mismatch",
		BatRegionOutOfRange:         "Region out of range",
		BatNotCloneable:             "Elements are not cloneable",
		BatInternal:                 "Internal batch error",
		IOLoadFileError:             "I/O load file error",
		IOCacheError:                "Cache error",
		IOManifestError:             "Project manifest error",
		IOWriteFileError:            "I/O write file error",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("BAT%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
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
