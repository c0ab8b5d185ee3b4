package sqlmonitor

import "strings"

const (
	metricGetConnection = "getConnection"

	dbSQLStatementLatencyMs = "db.sql.statement.latency"
	dbSQLStatementCalls     = "db.sql.statement.calls"
)

// metricName joins the non-empty names with dots.
func metricName(name string, names ...string) string {
	var sb strings.Builder

	sb.WriteString(name)

	for _, n := range names {
		if n == "" {
			continue
		}

		sb.WriteByte('.')
		sb.WriteString(n)
	}

	return sb.String()
}
