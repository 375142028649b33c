// Package mockapi implements an in-memory development server for the
// Order-Food HTTP contract.
//
// It exists so the client can be developed and integration-tested without the
// production backend: JWT bearer auth, role gating, food/order stores and the
// stats aggregate all behave like the real thing but live in process memory.
// Handlers split by surface: handlers_auth.go, handlers_foods.go,
// handlers_orders.go, handlers_admin.go.
package mockapi
