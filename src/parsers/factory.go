package parsers

import (
	"fmt"

	"github.com/username/edvhesabat/backend/src/processors"
)

// GetParser returns the parser for a named source.
func GetParser(source string, policy *processors.RatePolicy) (Parser, error) {
	switch source {
	case "qaime":
		return NewQaimeCSVParser(policy), nil
	case "rows":
		return NewRowsParser(policy), nil
	default:
		return nil, fmt.Errorf("no parser available for source: %s", source)
	}
}
