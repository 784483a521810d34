// Package kvstore is a small key-value settings store with an explicit
// flush step.
//
// Writes made through Set and Delete are only guaranteed to survive a restart
// after Sync returns nil. Drivers:
//
//   - memory: process-local map
//   - file: one JSON document, rewritten atomically on Sync
//   - redis: keys namespaced under a prefix
//
// Secure wraps any Store and encrypts values before they reach it.
package kvstore
