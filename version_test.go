package sqlmonitor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.nhat.io/sqlmonitor"
)

func TestVersion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.1.0", sqlmonitor.Version())
	assert.Equal(t, "semver:0.1.0", sqlmonitor.SemVersion())
}
