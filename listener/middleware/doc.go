// Package middleware holds the net/http middleware the HTTP API runs behind:
// request IDs, request logging, panic recovery, body size limits and request
// deadlines. Every constructor returns a func(http.Handler) http.Handler, so
// they plug into chi's Use as well as plain handler chains.
package middleware
