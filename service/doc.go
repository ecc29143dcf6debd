// Package service exposes the transactional facade over the matching
// core. One non-reentrant mutex linearises every mutation, including
// the background good-for-day sweep; snapshots are by-value so readers
// inspect depth without holding the lock.
package service
