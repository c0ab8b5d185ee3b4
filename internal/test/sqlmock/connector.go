package sqlmock

import (
	"context"
	"database/sql/driver"
	"errors"
	"sync"

	"github.com/DATA-DOG/go-sqlmock"
)

var (
	_ driver.Driver        = (*Driver)(nil)
	_ driver.DriverContext = (*Driver)(nil)
	_ driver.Connector     = (*connector)(nil)
)

// Driver is a driver.DriverContext whose connectors all return the same sqlmock connection.
type Driver struct {
	conn driver.Conn
	err  error

	mocks []func(Sqlmock)
	mock  Sqlmock

	mu   sync.Mutex
	dsns []string
}

// DriverContext creates a new Driver. The mocks are set up every time a connection is acquired.
func DriverContext(mocks ...func(Sqlmock)) *Driver {
	_, m, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual),
		sqlmock.MonitorPingsOption(true),
	)

	d := &Driver{err: err, mocks: mocks, mock: m}

	if c, ok := m.(driver.Conn); ok {
		d.conn = c
	}

	return d
}

// Open is not supported, use OpenConnector.
func (d *Driver) Open(string) (driver.Conn, error) {
	return nil, errors.New("sqlmock: use OpenConnector")
}

// OpenConnector returns a new connector for the dsn.
func (d *Driver) OpenConnector(dsn string) (driver.Connector, error) {
	if d.err != nil {
		return nil, d.err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.dsns = append(d.dsns, dsn)

	return &connector{driver: d}, nil
}

// DSNs returns the dsns of the connectors opened so far.
func (d *Driver) DSNs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]string(nil), d.dsns...)
}

// ExpectationsWereMet checks the expectations of the underlying mock.
func (d *Driver) ExpectationsWereMet() error {
	if d.err != nil {
		return d.err
	}

	return d.mock.ExpectationsWereMet()
}

type connector struct {
	driver *Driver
}

func (c *connector) Connect(context.Context) (driver.Conn, error) {
	for _, mock := range c.driver.mocks {
		mock(c.driver.mock)
	}

	return c.driver.conn, nil
}

func (c *connector) Driver() driver.Driver {
	return c.driver
}
