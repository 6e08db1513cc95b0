package ratelimit

import "strings"

// UnknownClient is the shared bucket for requests that carry no client address.
const UnknownClient = "unknown"

// DeriveClientKey picks the first X-Forwarded-For entry, then X-Real-IP, then
// UnknownClient. The value is not validated; it only has to be stable per client.
func DeriveClientKey(get func(string) string) string {
	if forwarded := get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if realIP := strings.TrimSpace(get("X-Real-IP")); realIP != "" {
		return realIP
	}

	return UnknownClient
}
