package sqlmonitor

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

const _maxDriver = 150

var regMu sync.Mutex

// Register initializes and registers our monitored database driver identified by its driverName. On success, it
// returns the generated driverName to use when calling sql.Open.
//
// It is possible to register multiple monitored drivers for the same database driver if needing different monitors.
func Register(driverName string, m *ConnectionMonitor) (string, error) {
	// retrieve the driver implementation we need to wrap.
	db, err := sql.Open(driverName, "")
	if err != nil {
		return "", err
	}

	dri := db.Driver()

	if err = db.Close(); err != nil {
		return "", err
	}

	regMu.Lock()
	defer regMu.Unlock()

	// Since we might want to register multiple monitored drivers, but potentially the same underlying database
	// driver, we cycle through to find available driver names.
	driverName += "-sqlmonitor-"

	registered := make(map[string]struct{})

	for _, name := range sql.Drivers() {
		registered[name] = struct{}{}
	}

	for i := int64(0); i < _maxDriver; i++ {
		regName := driverName + strconv.FormatInt(i, 10)

		if _, found := registered[regName]; !found {
			sql.Register(regName, Wrap(dri, m))

			return regName, nil
		}
	}

	return "", errors.New("unable to register driver, all slots have been taken")
}

// Wrap takes a SQL driver and monitors the acquisition of its connections.
//
// With driver.DriverContext, every connector is a connection source. Otherwise, every dsn is.
func Wrap(d driver.Driver, m *ConnectionMonitor) driver.Driver {
	drv := &monitoredDriver{
		parent:  d,
		monitor: m,
		sources: xsync.NewMapOf[string, *dsnConnector](),
	}

	if _, ok := d.(driver.DriverContext); ok {
		return struct {
			driver.Driver
			driver.DriverContext
		}{drv, drv}
	}

	return struct{ driver.Driver }{drv}
}

// WrapConnector monitors the acquisition of the connections of the connector, which is the connection source.
func WrapConnector(c driver.Connector, m *ConnectionMonitor) driver.Connector {
	return &monitoredConnector{
		parent:  c,
		monitor: m,
	}
}

// OpenDB opens a database whose connection acquisitions are monitored.
func OpenDB(c driver.Connector, m *ConnectionMonitor) *sql.DB {
	return sql.OpenDB(WrapConnector(c, m))
}

var (
	_ driver.Driver        = (*monitoredDriver)(nil)
	_ driver.DriverContext = (*monitoredDriver)(nil)
)

type monitoredDriver struct {
	parent  driver.Driver
	monitor *ConnectionMonitor

	// sources keeps one connection source per dsn for Open.
	sources *xsync.MapOf[string, *dsnConnector]
}

func (d *monitoredDriver) Open(name string) (driver.Conn, error) {
	start := time.Now()

	c, err := d.parent.Open(name)
	if err != nil {
		return nil, err
	}

	return d.monitor.MonitorAcquire(context.Background(), c, d.source(name), time.Since(start)), nil
}

func (d *monitoredDriver) source(name string) driver.Connector {
	s, _ := d.sources.LoadOrCompute(name, func() *dsnConnector {
		return &dsnConnector{dsn: name, driver: d}
	})

	return s
}

func (d *monitoredDriver) OpenConnector(name string) (driver.Connector, error) {
	c, err := d.parent.(driver.DriverContext).OpenConnector(name)
	if err != nil {
		return nil, err
	}

	return &monitoredConnector{
		parent:  c,
		driver:  d,
		monitor: d.monitor,
		dsn:     name,
	}, nil
}

var (
	_ driver.Connector = (*dsnConnector)(nil)
	_ MetadataProvider = (*dsnConnector)(nil)
)

// dsnConnector is the connection source of the connections opened with a dsn.
type dsnConnector struct {
	dsn    string
	driver *monitoredDriver
}

func (c *dsnConnector) Connect(context.Context) (driver.Conn, error) {
	return c.driver.Open(c.dsn)
}

func (c *dsnConnector) Driver() driver.Driver {
	return c.driver
}

func (c *dsnConnector) Metadata(context.Context) (Metadata, error) {
	return ParseDSN(c.dsn)
}

var (
	_ driver.Connector = (*monitoredConnector)(nil)
	_ MetadataProvider = (*monitoredConnector)(nil)
	_ io.Closer        = (*monitoredConnector)(nil)
)

type monitoredConnector struct {
	parent  driver.Connector
	driver  driver.Driver
	monitor *ConnectionMonitor

	// dsn is empty when the connector was not opened by a monitored driver.
	dsn string
}

func (c *monitoredConnector) Connect(ctx context.Context) (driver.Conn, error) {
	start := time.Now()

	conn, err := c.parent.Connect(ctx)
	if err != nil {
		return nil, err
	}

	return c.monitor.MonitorAcquire(ctx, conn, c, time.Since(start)), nil
}

func (c *monitoredConnector) Driver() driver.Driver {
	if c.driver != nil {
		return c.driver
	}

	return c.parent.Driver()
}

// Metadata asks the parent connector first, then reads the dsn.
func (c *monitoredConnector) Metadata(ctx context.Context) (Metadata, error) {
	if p, ok := c.parent.(MetadataProvider); ok {
		return p.Metadata(ctx)
	}

	if c.dsn == "" {
		return Metadata{}, ErrMetadataUnavailable
	}

	return ParseDSN(c.dsn)
}

func (c *monitoredConnector) Close() error {
	if cl, ok := c.parent.(io.Closer); ok {
		return cl.Close()
	}

	return nil
}
