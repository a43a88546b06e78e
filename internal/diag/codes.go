package diag

import (
	"fmt"
)

// Code compactly identifies a diagnostic kind with a stable string form.
type Code uint16

const (
	UnknownCode Code = 0

	// Parse failures from the host grammar.
	ParseFailed Code = 1001

	// Extraction warnings (recoverable).
	ExtNonConstantKey    Code = 2001
	ExtNonConstantValue  Code = 2002
	ExtUnsupportedMarker Code = 2003
	ExtCacheReadFailed   Code = 2004
	ExtCacheWriteFailed  Code = 2005

	// Extraction errors (fatal per unit).
	ExtMissingID          Code = 3001
	ExtMissingDefault     Code = 3002
	ExtMissingDescription Code = 3003
	ExtDuplicateID        Code = 3004
	ExtBadMessageSyntax   Code = 3005
	ExtBadEscape          Code = 3006
	ExtBadCallShape       Code = 3007

	// Catalog persistence.
	CatWriteFailed Code = 4001
)

var codeNames = map[Code]string{
	UnknownCode:           "UNKNOWN",
	ParseFailed:           "PARSE_FAILED",
	ExtNonConstantKey:     "EXT_NON_CONSTANT_KEY",
	ExtNonConstantValue:   "EXT_NON_CONSTANT_VALUE",
	ExtUnsupportedMarker:  "EXT_UNSUPPORTED_MARKER",
	ExtCacheReadFailed:    "EXT_CACHE_READ_FAILED",
	ExtCacheWriteFailed:   "EXT_CACHE_WRITE_FAILED",
	ExtMissingID:          "EXT_MISSING_ID",
	ExtMissingDefault:     "EXT_MISSING_DEFAULT_MESSAGE",
	ExtMissingDescription: "EXT_MISSING_DESCRIPTION",
	ExtDuplicateID:        "EXT_DUPLICATE_ID",
	ExtBadMessageSyntax:   "EXT_BAD_MESSAGE_SYNTAX",
	ExtBadEscape:          "EXT_BAD_ESCAPE",
	ExtBadCallShape:       "EXT_BAD_CALL_SHAPE",
	CatWriteFailed:        "CAT_WRITE_FAILED",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CODE_%d", uint16(c))
}
