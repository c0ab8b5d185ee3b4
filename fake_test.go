package sqlmonitor_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"sync"
	"time"

	"go.nhat.io/sqlmonitor"
)

var errNotSupported = errors.New("not supported")

type fakeConn struct{}

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errNotSupported
}

func (c *fakeConn) Close() error {
	return nil
}

func (c *fakeConn) Begin() (driver.Tx, error) {
	return nil, errNotSupported
}

func (c *fakeConn) Ping(context.Context) error {
	return nil
}

type fakeConnector struct {
	name string
}

func (c *fakeConnector) Connect(context.Context) (driver.Conn, error) {
	return &fakeConn{}, nil
}

func (c *fakeConnector) Driver() driver.Driver {
	return nil
}

// providerConn knows its metadata.
type providerConn struct {
	fakeConn

	md  sqlmonitor.Metadata
	err error
}

func (c *providerConn) Metadata(context.Context) (sqlmonitor.Metadata, error) {
	return c.md, c.err
}

// providerConnector knows its metadata.
type providerConnector struct {
	fakeConnector

	md sqlmonitor.Metadata
}

func (c *providerConnector) Metadata(context.Context) (sqlmonitor.Metadata, error) {
	return c.md, nil
}

// funcConnector is not comparable.
type funcConnector struct {
	connect func(ctx context.Context) (driver.Conn, error)
}

func (c funcConnector) Connect(ctx context.Context) (driver.Conn, error) {
	return c.connect(ctx)
}

func (c funcConnector) Driver() driver.Driver {
	return nil
}

type timerRecord struct {
	Name     string
	Duration time.Duration
}

type timerLog struct {
	mu      sync.Mutex
	records []timerRecord
}

func (l *timerLog) RecordTimer(_ context.Context, name string, d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, timerRecord{Name: name, Duration: d})
}

func (l *timerLog) Names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	names := make([]string, len(l.records))

	for i, r := range l.records {
		names[i] = r.Name
	}

	return names
}

func (l *timerLog) Records() []timerRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	ret := make([]timerRecord, len(l.records))
	copy(ret, l.records)

	return ret
}

func staticMetadata(url, user string) sqlmonitor.MetadataResolver {
	return func(context.Context, driver.Conn, driver.Connector) (sqlmonitor.Metadata, error) {
		return sqlmonitor.Metadata{URL: url, UserName: user}, nil
	}
}
