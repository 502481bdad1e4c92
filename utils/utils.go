// Package utils provides utility functions for the application.
package utils

import (
	"strconv"
	"strings"
)

func ToPtr[T any](v T) *T {
	return &v
}

// ContextKey is the type for request-scoped context values
type ContextKey string

// Request-scoped context keys
const (
	RequestIDKey  ContextKey = "request_id"
	UserAgentKey  ContextKey = "user_agent"
	IPAddressKey  ContextKey = "ip_address"
	EndpointKey   ContextKey = "endpoint"
	CancelFuncKey ContextKey = "cancel_func"
)

// CoerceUint parses s as an unsigned integer. Malformed or negative input
// coerces to 0, which downstream filters treat as "no constraint".
func CoerceUint(s string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}
