// Package cache holds the redis client and the small lock helper built on it.
package cache

import "github.com/redis/go-redis/v9"

// NewClient builds a redis client for the given address.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}
