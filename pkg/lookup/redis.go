package lookup

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/rulekit/pkg/predicate"
)

// DefaultPrefix namespaces the Redis sets of the checker.
const DefaultPrefix = "rulekit"

// Redis answers lookups with SISMEMBER on the set "<prefix>:<target>".
// Sets are maintained by the application, for example on user sign-up.
type Redis struct {
	client redis.Cmdable
	prefix string
}

// NewRedis creates a checker. An empty prefix falls back to DefaultPrefix.
func NewRedis(client redis.Cmdable, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

// Key returns the set key used for target.
func (r *Redis) Key(target string) string {
	return r.prefix + ":" + target
}

// Add records values as present under target.
func (r *Redis) Add(ctx context.Context, target string, values ...any) error {
	if len(values) == 0 {
		return nil
	}
	members := make([]any, len(values))
	for i, v := range values {
		members[i] = predicate.ToString(v)
	}
	if err := r.client.SAdd(ctx, r.Key(target), members...).Err(); err != nil {
		return errors.Join(ErrLookupFailed, err)
	}
	return nil
}

func (r *Redis) Exists(ctx context.Context, target string, value any) (bool, error) {
	if _, err := ParseTarget(target); err != nil {
		return false, err
	}
	found, err := r.client.SIsMember(ctx, r.Key(target), predicate.ToString(value)).Result()
	if err != nil {
		return false, errors.Join(ErrLookupFailed, err)
	}
	return found, nil
}
