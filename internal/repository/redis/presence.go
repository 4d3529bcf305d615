// Package redis mirrors realtime presence so other instances and services can read it.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/s21platform/skills-messenger/internal/config"
)

// Keys:
//   - <prefix>:presence:<userID> -> {"status":"online","last_seen":<unix>} with ttl
//   - <prefix>:online -> set of online user ids
type Presence struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

type presenceValue struct {
	Status   string `json:"status"`
	LastSeen int64  `json:"last_seen"`
}

func New(cfg *config.Config) *Presence {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return NewFromClient(client, cfg.Redis.Prefix, cfg.Redis.PresenceTTL)
}

func NewFromClient(client *redis.Client, prefix string, ttl time.Duration) *Presence {
	return &Presence{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (p *Presence) Close() {
	_ = p.client.Close()
}

func (p *Presence) presenceKey(userID string) string {
	return fmt.Sprintf("%s:presence:%s", p.prefix, userID)
}

func (p *Presence) onlineKey() string {
	return fmt.Sprintf("%s:online", p.prefix)
}

func (p *Presence) SetOnline(ctx context.Context, userID string) error {
	value, err := json.Marshal(presenceValue{Status: "online", LastSeen: time.Now().Unix()})
	if err != nil {
		return fmt.Errorf("failed to marshal presence: %v", err)
	}

	_, err = p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, p.presenceKey(userID), value, p.ttl)
		pipe.SAdd(ctx, p.onlineKey(), userID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set online: %v", err)
	}

	return nil
}

func (p *Presence) SetOffline(ctx context.Context, userID string) error {
	_, err := p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, p.presenceKey(userID))
		pipe.SRem(ctx, p.onlineKey(), userID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set offline: %v", err)
	}

	return nil
}

// Refresh extends the presence key of a user that is still connected.
func (p *Presence) Refresh(ctx context.Context, userID string) error {
	if err := p.client.Expire(ctx, p.presenceKey(userID), p.ttl).Err(); err != nil {
		return fmt.Errorf("failed to refresh presence: %v", err)
	}
	return nil
}

// Online reports which of userIDs have a live presence key. Members of the online set whose
// key expired are treated as offline.
func (p *Presence) Online(ctx context.Context, userIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	cmds := make([]*redis.IntCmd, len(userIDs))
	_, err := p.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, userID := range userIDs {
			cmds[i] = pipe.Exists(ctx, p.presenceKey(userID))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check presence: %v", err)
	}

	for i, userID := range userIDs {
		result[userID] = cmds[i].Val() > 0
	}

	return result, nil
}

// Prune drops members of the online set whose presence key has expired.
func (p *Presence) Prune(ctx context.Context) (int, error) {
	members, err := p.client.SMembers(ctx, p.onlineKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list online users: %v", err)
	}

	online, err := p.Online(ctx, members)
	if err != nil {
		return 0, err
	}

	stale := make([]interface{}, 0)
	for userID, ok := range online {
		if !ok {
			stale = append(stale, userID)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	if err := p.client.SRem(ctx, p.onlineKey(), stale...).Err(); err != nil {
		return 0, fmt.Errorf("failed to prune online users: %v", err)
	}

	return len(stale), nil
}
