package infra_session_cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

// Driver keeps role session tokens in Redis under "<prefix>:<token>". Redis
// expires a session when its TTL runs out, there is no sweeper.
type Driver struct {
	client *redis.Client
	prefix string
}

func New(
	client *redis.Client,
	prefix string,
) *Driver {
	return &Driver{
		client: client,
		prefix: prefix,
	}
}

func (d *Driver) Set(token string, role string, ttl time.Duration) error {
	if err := d.client.Set(d.sessionKey(token), role, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Get returns an empty role for an unknown or expired token.
func (d *Driver) Get(token string) (string, error) {
	role, err := d.client.Get(d.sessionKey(token)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("load session: %w", err)
	}
	return role, nil
}

// Delete revokes a session. Revoking an unknown token is not an error.
func (d *Driver) Delete(token string) error {
	if err := d.client.Del(d.sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (d *Driver) sessionKey(token string) string {
	if d.prefix == "" {
		return token
	}
	return d.prefix + ":" + token
}
