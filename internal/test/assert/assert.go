package assert

import (
	"github.com/stretchr/testify/assert"
	"github.com/swaggest/assertjson"
)

// Func asserts the collected output.
type Func func(t assert.TestingT, actual string, msgAndArgs ...any) bool

// EqualJSON expects the output to be the JSON document, "<ignore-diff>" placeholders are allowed.
func EqualJSON(expect string) Func {
	return func(t assert.TestingT, actual string, msgAndArgs ...any) bool {
		return assertjson.Equal(t, []byte(expect), []byte(actual), msgAndArgs...)
	}
}

// Empty expects no output at all.
func Empty() Func {
	return func(t assert.TestingT, actual string, msgAndArgs ...any) bool {
		return assert.Empty(t, actual, msgAndArgs...)
	}
}
