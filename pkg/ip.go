package pkg

import (
	"net"
	"net/http"
	"regexp"
	"strings"
)

var localDockerIpRegex = regexp.MustCompile(`^172\.\d{1,3}\.0\.1$`)

// IPIsLocal reports loopback and docker bridge gateway addresses.
func IPIsLocal(ipAddr string) bool {
	ip := net.ParseIP(ipAddr)
	if ip != nil && ip.IsLoopback() {
		return true
	}
	return localDockerIpRegex.MatchString(ipAddr)
}

// ClientIP returns the originating client address of a request. Proxy headers
// win over the connection address; for X-Forwarded-For the first hop is used.
// An empty string is returned when no valid address is found.
func ClientIP(r *http.Request) string {
	candidates := []string{r.Header.Get("X-Real-Ip")}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		candidates = append(candidates, strings.Split(forwarded, ",")[0])
	}
	candidates = append(candidates, r.RemoteAddr)

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if host, _, err := net.SplitHostPort(candidate); err == nil {
			candidate = host
		}
		if net.ParseIP(candidate) == nil {
			continue
		}
		if IPIsLocal(candidate) {
			return "localhost"
		}
		return candidate
	}

	return ""
}
