package inflight

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/coordinate-advisor/internal/domain/coordinate"
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = valkey.NewLuaScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ValkeyGuard shares in-flight keys across replicas through Valkey.
type ValkeyGuard struct {
	client valkey.Client
	prefix string
}

// NewValkeyGuard constructs a guard backed by Valkey.
func NewValkeyGuard(client valkey.Client, prefix string) *ValkeyGuard {
	if prefix == "" {
		prefix = "coordinate"
	}
	return &ValkeyGuard{client: client, prefix: prefix}
}

// Acquire implements coordinate.InflightGuard using SET NX EX.
func (g *ValkeyGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	if ttl < time.Second {
		ttl = time.Second
	}
	token := uuid.NewString()
	fullKey := g.key(key)

	cmd := g.client.B().Set().Key(fullKey).Value(token).Nx().Ex(ttl).Build()
	if err := g.client.Do(ctx, cmd).Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, coordinate.ErrInFlight
		}
		return nil, err
	}

	return func() {
		// The request context may already be cancelled.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Exec(releaseCtx, g.client, []string{fullKey}, []string{token}).Error()
	}, nil
}

func (g *ValkeyGuard) key(sessionID string) string {
	return fmt.Sprintf("%s:inflight:%s", g.prefix, sessionID)
}

var _ coordinate.InflightGuard = (*ValkeyGuard)(nil)
