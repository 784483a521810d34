// Package redis wraps go-redis with simplemovies logging, configuration and
// health reporting. kvstore builds its redis driver on Client.
//
//	c, err := redis.New(redis.Config{Addr: "localhost:6379"}, log)
//	defer c.Close()
package redis
