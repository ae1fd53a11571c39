package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix    = "user:%d"
	messageKeyPrefix = "message:%d"
	feedKeyPrefix    = "feed:%d"
)

const (
	UserTTL    = 5 * time.Minute
	MessageTTL = 10 * time.Minute
	FeedTTL    = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func MessageKey(messageID uint) string {
	return fmt.Sprintf(messageKeyPrefix, messageID)
}

func FeedKey(userID uint) string {
	return fmt.Sprintf(feedKeyPrefix, userID)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateMessage(ctx context.Context, messageID uint) {
	Invalidate(ctx, MessageKey(messageID))
}

// InvalidateFeed drops the cached feed of a single user. A new message
// fans out to follower feeds lazily via the short feed TTL instead of
// eager invalidation.
func InvalidateFeed(ctx context.Context, userID uint) {
	Invalidate(ctx, FeedKey(userID))
}
