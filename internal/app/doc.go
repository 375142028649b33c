// Package app is the application layer: the only component that references
// session, cart, catalog and the API surfaces together. Screens call it.
package app
