// Package storage implements the client's durable local state.
//
// Two files under the data directory: an encrypted credentials file holding
// the bearer token, and a plain JSON file holding the current user record.
// Writes go through a temp file + rename so a crash never leaves a torn file.
package storage
