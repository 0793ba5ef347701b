// Package api handles incoming HTTP requests: routing-facing handlers,
// request validation, and response formatting. It translates HTTP concerns
// into domain operations and maps domain/store errors back to status codes.
package api
