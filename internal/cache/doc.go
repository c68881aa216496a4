// Package cache keeps slow-changing API responses (years, regions, statistics) on disk
// so repeated commands do not hit the remote API.
//
// Entries are JSON files under ~/.contractlens/cache/, keyed by a SHA256 digest of the
// request that produced them, and expire after a configurable TTL (default 1 hour).
package cache
