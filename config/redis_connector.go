package config

import (
	"fmt"

	"gopkg.in/redis.v5"
)

// SetupRedis connects to redisUrl and checks the connection once.
func SetupRedis(redisUrl string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: redisUrl,
	})

	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis %s: %w", redisUrl, err)
	}

	return client, nil
}
