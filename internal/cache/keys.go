package cache

import "strings"

const (
	GlobalKeyPrefix = "quizbot"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// BoardMessageKey is the key holding a quiz's posted board-message target
// (chat id, message id, page), so a restarted process can keep editing the
// shared leaderboard message.
func BoardMessageKey(quizID string) string {
	return GenerateCacheKey("leaderboard", "message", quizID)
}
