// Package api implements the typed HTTP/JSON client for the Order-Food backend.
//
// All endpoints share one response envelope ({success, message, data}) and one
// error mapping: server-provided messages become display-ready structured
// errors, a 401 fires the unauthorized hook so the session can invalidate
// itself, and idempotent reads are retried on transport failures.
// Endpoints split by surface: auth.go, foods.go, orders.go, admin.go.
package api
