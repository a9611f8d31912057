// Package cache stores API list responses on disk with a TTL.
//
// Entries live as JSON files under ~/.icebreaker/cache/ keyed by a SHA256 of
// the request. Only list responses are cached; refreshing the list clears the
// store so the next fetch goes to the server.
package cache
