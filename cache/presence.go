package cache

import (
	"context"
	"log"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const onlineSetKey = "online_users"

// PresenceStore tracks which users have at least one live websocket
// connection, backed by a Redis set.
type PresenceStore struct {
	rdb *redis.Client
}

func NewPresenceStore(rdb *redis.Client) *PresenceStore {
	return &PresenceStore{rdb: rdb}
}

func (s *PresenceStore) SetOnline(ctx context.Context, userID uint) {
	if err := s.rdb.SAdd(ctx, onlineSetKey, strconv.FormatUint(uint64(userID), 10)).Err(); err != nil {
		log.Printf("presence add failed for user %d: %v", userID, err)
	}
}

func (s *PresenceStore) SetOffline(ctx context.Context, userID uint) {
	if err := s.rdb.SRem(ctx, onlineSetKey, strconv.FormatUint(uint64(userID), 10)).Err(); err != nil {
		log.Printf("presence remove failed for user %d: %v", userID, err)
	}
}

// IsOnline reports whether the user currently has a live connection.
func (s *PresenceStore) IsOnline(ctx context.Context, userID uint) bool {
	online, err := s.rdb.SIsMember(ctx, onlineSetKey, strconv.FormatUint(uint64(userID), 10)).Result()
	if err != nil {
		log.Printf("presence check failed for user %d: %v", userID, err)
		return false
	}
	return online
}
