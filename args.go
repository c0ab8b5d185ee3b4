package sqlmonitor

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

const (
	_maxArgValueLength = 256
	_shortenedSuffix   = "... (more than 256 chars)"
)

func argsAttributes(args []driver.NamedValue) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(args))

	for _, arg := range args {
		attrs = append(attrs, argAttribute(arg))
	}

	return attrs
}

// argAttribute converts a statement argument to an attribute keyed by its name, or by its ordinal when it is not named.
func argAttribute(arg driver.NamedValue) attribute.KeyValue {
	name := arg.Name
	if name == "" {
		name = strconv.Itoa(arg.Ordinal)
	}

	key := attribute.Key("db.sql.args." + name)

	switch v := arg.Value.(type) {
	case nil:
		return key.String("")

	case int64:
		return key.Int64(v)

	case float64:
		return key.Float64(v)

	case bool:
		return key.Bool(v)

	case []byte:
		return key.String(shortenArg(string(v)))

	case string:
		return key.String(shortenArg(v))

	case time.Time:
		return key.String(v.Format(time.RFC3339Nano))

	default:
		return key.String(shortenArg(fmt.Sprintf("%v", v)))
	}
}

func shortenArg(s string) string {
	runes := []rune(s)

	if len(runes) <= _maxArgValueLength {
		return s
	}

	return string(runes[:_maxArgValueLength-len(_shortenedSuffix)]) + _shortenedSuffix
}
