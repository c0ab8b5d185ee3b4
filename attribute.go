package sqlmonitor

import (
	"go.opentelemetry.io/otel/attribute"
)

const (
	// Type: string.
	// Required: No.
	dbInstance = attribute.Key("db.instance")

	// Type: string.
	// Required: No.
	dbSQLStatus = attribute.Key("db.sql.status")
	// Type: string.
	// Required: No.
	dbSQLError = attribute.Key("db.sql.error")
	// Type: int64.
	// Required: No.
	dbSQLConnectionID = attribute.Key("db.sql.connection_id")
)

var (
	dbSQLStatusOK    = dbSQLStatus.String("OK")
	dbSQLStatusERROR = dbSQLStatus.String("ERROR")
)
