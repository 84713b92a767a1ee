package cache

import "fmt"

// ReportKey addresses a cached dashboard report for a cleaned table
// fingerprint scored by the named backend.
func ReportKey(scorer, fingerprint string) string {
	return fmt.Sprintf("report:%s:%s", scorer, fingerprint)
}

func RateLimitKey(client string) string {
	return fmt.Sprintf("ratelimit:%s", client)
}
