// Package domain holds the core types and interfaces of the ordering client.
//
// Types mirror the wire shapes of the Order-Food API (users, foods, orders).
// Interfaces describe the collaborators the session manager and cart depend on,
// so they can be mocked in tests and backed by the HTTP client in production.
package domain
