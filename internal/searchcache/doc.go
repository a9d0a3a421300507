// Package searchcache holds product search, autocomplete and trending
// results for a fixed TTL (five minutes by default). Entries are keyed by
// the lookup kind plus the JSON form of its filter and expire lazily: an
// expired entry is deleted by the read that finds it. There is no size
// bound and no background sweep.
//
// Memory is the default, per-process store. Redis shares entries between
// processes and lets the server expire them.
package searchcache
