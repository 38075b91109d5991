package kaksviz

import (
	"fmt"
	"strings"
)

// MissingColumnError reports that none of the metric column aliases
// matched the input table.
type MissingColumnError struct {
	Tried     []string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("could not find Ka/Ks column, tried: %s; available columns: %s",
		strings.Join(e.Tried, ", "), strings.Join(e.Available, ", "))
}

// MissingRequiredColumnError reports required columns that are absent
// from the input table after a metric column was found.
type MissingRequiredColumnError struct {
	Missing   []string
	Available []string
}

func (e *MissingRequiredColumnError) Error() string {
	return fmt.Sprintf("missing required columns: %s; available columns: %s",
		strings.Join(e.Missing, ", "), strings.Join(e.Available, ", "))
}

// NumericConversionError reports a metric cell that does not parse as a
// number. Line is 1-based and counts the header line.
type NumericConversionError struct {
	Column string
	Value  string
	Line   int
}

func (e *NumericConversionError) Error() string {
	return fmt.Sprintf("invalid numeric value %q in column %s (line %d)",
		e.Value, e.Column, e.Line)
}
