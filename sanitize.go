package sqlmonitor

import "regexp"

// Sanitizer turns a string into a segment that is safe to use in a dot separated metric name. It must be
// deterministic.
type Sanitizer func(s string) string

var unsafeMetricChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SanitizeMetricSegment replaces every run of characters other than letters, digits, '_' and '-' with a single '_'.
//
//	SanitizeMetricSegment("jdbc:db://host/app-alice") // jdbc_db_host_app-alice
func SanitizeMetricSegment(s string) string {
	return unsafeMetricChars.ReplaceAllString(s, "_")
}
