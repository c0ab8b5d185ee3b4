package sqlmonitor

import (
	"database/sql/driver"
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"
)

// identityCache maps connection sources to their identity. Sources are compared the way Go compares interface values:
// pointers by address. The first stored identity of a source wins and never changes.
type identityCache struct {
	identities *xsync.MapOf[driver.Connector, string]
}

func newIdentityCache() identityCache {
	return identityCache{identities: xsync.NewMapOf[driver.Connector, string]()}
}

func (c identityCache) Load(source driver.Connector) (string, bool) {
	if !cacheable(source) {
		return "", false
	}

	return c.identities.Load(source)
}

// LoadOrStore stores the identity unless the source already has one, and returns the identity of the source.
func (c identityCache) LoadOrStore(source driver.Connector, identity string) string {
	if !cacheable(source) {
		return identity
	}

	actual, _ := c.identities.LoadOrStore(source, identity)

	return actual
}

// cacheable tells whether the source can be a map key. A source that is not is resolved on every call.
func cacheable(source driver.Connector) bool {
	return source != nil && reflect.TypeOf(source).Comparable()
}
