// Package api contains the HTTP handlers for memo, tag and group
// endpoints, along with the mapping from domain and store errors to HTTP
// status codes and sanitized client messages.
package api
