package util

import (
	"strconv"
	"strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// SplitHostPort splits "host:port", falling back to the default port when
// the port is missing or invalid.
func SplitHostPort(addr string, defPort int) (string, int) {
	host, portStr, found := strings.Cut(addr, ":")
	if !found || host == "" {
		if addr == "" {
			return "localhost", defPort
		}
		return addr, defPort
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return host, defPort
	}
	return host, port
}
