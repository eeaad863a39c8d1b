package cache

import "strings"

// GlobalKeyPrefix namespaces every cache key written by this service.
const GlobalKeyPrefix = "prepdeck"

// GenerateCacheKey builds a colon-delimited cache key of the form
// prefix:service:object:identifier. Optional params are joined by "_"
// and appended as a final segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	var b strings.Builder
	b.WriteString(GlobalKeyPrefix)
	for _, part := range []string{serviceName, objectType, identifier} {
		b.WriteByte(':')
		b.WriteString(part)
	}
	if len(paramsKey) > 0 {
		b.WriteByte(':')
		b.WriteString(strings.Join(paramsKey, "_"))
	}
	return b.String()
}
