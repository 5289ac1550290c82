// Package redis wraps go-redis with the module's configuration, logging and
// health conventions.
//
// Its main use is sharing webhook delivery claims between receiver
// replicas:
//
//	client, err := redis.New(cfg.Redis, log)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	srv, err := webhook.NewServer(cfg.Webhook, handle,
//	    webhook.WithDeduplicator(redis.NewDeduplicator(client, 24*time.Hour)),
//	    webhook.WithHealthCheckers(client),
//	)
package redis
