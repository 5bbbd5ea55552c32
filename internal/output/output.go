// Package output renders malt results for the terminal (tables, one-line
// records, markdown) and for scripts (JSON).
package output

import (
	"os"
	"strings"
)

// EnvFormat names the environment variable holding the fallback format
// when no format flag is given, e.g. MALT_OUTPUT=json.
const EnvFormat = "MALT_OUTPUT"

// Format is one of the ways a command result can be written.
type Format int

const (
	// FormatTable is the human-readable default.
	FormatTable Format = iota
	// FormatJSON writes one JSON document per command.
	FormatJSON
	// FormatCompact writes one line per task or history entry.
	FormatCompact
)

var formatNames = map[string]Format{
	"table":   FormatTable,
	"json":    FormatJSON,
	"compact": FormatCompact,
	"oneline": FormatCompact,
}

// ParseFormat maps a format name to a Format. Names are matched without
// regard to case or surrounding space.
func ParseFormat(name string) (Format, bool) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCompact:
		return "compact"
	default:
		return "table"
	}
}

// Detect picks the format for this invocation. Flags win over EnvFormat,
// JSON wins over compact, and compact wins over table. An unset or
// unrecognized EnvFormat means table.
func Detect(jsonFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case compactFlag:
		return FormatCompact
	case tableFlag:
		return FormatTable
	}
	if f, ok := ParseFormat(os.Getenv(EnvFormat)); ok {
		return f
	}
	return FormatTable
}
