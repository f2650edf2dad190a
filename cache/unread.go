package cache

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// Redis key layout:
//   unread:{userID}:{peerID} - messages from peer not yet viewed by user
const unreadPrefix = "unread:"

// UnreadStore tracks per-conversation unread counters in Redis. Counters
// are a cache over the message table; failures are logged and swallowed so
// a Redis outage never blocks message delivery.
type UnreadStore struct {
	rdb *redis.Client
}

func NewUnreadStore(rdb *redis.Client) *UnreadStore {
	return &UnreadStore{rdb: rdb}
}

func unreadKey(userID, peerID uint) string {
	return fmt.Sprintf("%s%d:%d", unreadPrefix, userID, peerID)
}

// Increment bumps the unread counter for messages from peer to user.
func (s *UnreadStore) Increment(ctx context.Context, userID, peerID uint) {
	if err := s.rdb.Incr(ctx, unreadKey(userID, peerID)).Err(); err != nil {
		log.Printf("unread increment failed for user %d peer %d: %v", userID, peerID, err)
	}
}

// Reset clears the unread counter after the user has viewed the thread.
func (s *UnreadStore) Reset(ctx context.Context, userID, peerID uint) {
	if err := s.rdb.Del(ctx, unreadKey(userID, peerID)).Err(); err != nil {
		log.Printf("unread reset failed for user %d peer %d: %v", userID, peerID, err)
	}
}

// Get returns the unread count for one conversation.
func (s *UnreadStore) Get(ctx context.Context, userID, peerID uint) int64 {
	count, err := s.rdb.Get(ctx, unreadKey(userID, peerID)).Int64()
	if err != nil && err != redis.Nil {
		log.Printf("unread get failed for user %d peer %d: %v", userID, peerID, err)
	}
	return count
}

// Total sums unread counts across all of a user's conversations.
func (s *UnreadStore) Total(ctx context.Context, userID uint) int64 {
	var total int64
	pattern := fmt.Sprintf("%s%d:*", unreadPrefix, userID)

	iter := s.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		count, err := s.rdb.Get(ctx, iter.Val()).Int64()
		if err != nil && err != redis.Nil {
			continue
		}
		total += count
	}
	if err := iter.Err(); err != nil {
		log.Printf("unread scan failed for user %d: %v", userID, err)
	}
	return total
}
