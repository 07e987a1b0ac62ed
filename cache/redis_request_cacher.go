package cache

import "gopkg.in/redis.v5"

// RedisRequestCacher stores each key as a Redis list capped at MaxNumber entries.
type RedisRequestCacher struct {
	MaxNumber int
	client    *redis.Client
}

func CreateRedisCache(client *redis.Client, maxNumber int) *RedisRequestCacher {
	return &RedisRequestCacher{MaxNumber: maxNumber, client: client}
}

func (cacher *RedisRequestCacher) Write(key string, value []byte) error {
	pushCmd := cacher.client.LPush(key, value)

	if pushCmd.Err() != nil {
		return pushCmd.Err()
	}

	trimCmd := cacher.client.LTrim(key, 0, int64(cacher.MaxNumber-1))

	if trimCmd.Err() != nil {
		return trimCmd.Err()
	}

	return nil
}

func (cacher *RedisRequestCacher) Read(key string) ([]string, error) {
	return cacher.client.LRange(key, 0, int64(cacher.MaxNumber-1)).Result()
}
