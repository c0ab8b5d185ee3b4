package intercept

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"slices"
	"sync"
)

var (
	regMu sync.Mutex
	// registeredBy keeps the engine that registered each intercepted driver.
	registeredBy = make(map[string]*Engine)
)

// RegisterDriver registers an intercepted version of the database/sql driver and returns its name. From then on, the
// engine reports the driver in DriverNames: every connection opened with the returned name is already intercepted.
//
// Registering the same driver again with the same engine is a no-op. If the intercepted driver is already registered
// by something else, ErrDriverRegistered is returned and the driver is not reported by the engine.
func (e *Engine) RegisterDriver(driverName string) (string, error) {
	// retrieve the driver implementation we need to wrap.
	db, err := sql.Open(driverName, "")
	if err != nil {
		return "", err
	}

	drv := db.Driver()

	if err = db.Close(); err != nil {
		return "", err
	}

	regName := driverName + "-intercept"

	regMu.Lock()
	defer regMu.Unlock()

	owner, ok := registeredBy[regName]

	switch {
	case ok && owner != e, !ok && slices.Contains(sql.Drivers(), regName):
		return "", fmt.Errorf("%w: %s", ErrDriverRegistered, regName)

	case !ok:
		sql.Register(regName, e.WrapDriver(drv))
		registeredBy[regName] = e
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !slices.Contains(e.driverNames, driverName) {
		e.driverNames = append(e.driverNames, driverName)
	}

	return regName, nil
}

// WrapDriver returns a driver whose connections are intercepted.
func (e *Engine) WrapDriver(d driver.Driver) driver.Driver {
	drv := interceptedDriver{parent: d, engine: e}

	if _, ok := d.(driver.DriverContext); ok {
		return struct {
			driver.Driver
			driver.DriverContext
		}{drv, drv}
	}

	return struct{ driver.Driver }{drv}
}

type interceptedDriver struct {
	parent driver.Driver
	engine *Engine
}

func (d interceptedDriver) Open(name string) (driver.Conn, error) {
	c, err := d.parent.Open(name)
	if err != nil {
		return nil, err
	}

	return d.engine.WrapConnection(c), nil
}

func (d interceptedDriver) OpenConnector(name string) (driver.Connector, error) {
	c, err := d.parent.(driver.DriverContext).OpenConnector(name)
	if err != nil {
		return nil, err
	}

	return interceptedConnector{parent: c, driver: d}, nil
}

type interceptedConnector struct {
	parent driver.Connector
	driver interceptedDriver
}

func (c interceptedConnector) Connect(ctx context.Context) (driver.Conn, error) {
	conn, err := c.parent.Connect(ctx)
	if err != nil {
		return nil, err
	}

	return c.driver.engine.WrapConnection(conn), nil
}

func (c interceptedConnector) Driver() driver.Driver {
	return c.driver
}

func (c interceptedConnector) Close() error {
	if cl, ok := c.parent.(io.Closer); ok {
		return cl.Close()
	}

	return nil
}
