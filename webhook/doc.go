// Package webhook receives transcriptions delivered asynchronously after a
// request sent with Webhook(true).
//
// Each delivery is signed with the workspace's webhook secret in the
// ElevenLabs-Signature header. The receiver rejects unsigned, tampered and
// stale deliveries before the handler runs:
//
//	srv, err := webhook.NewServer(cfg, func(ctx context.Context, ev *webhook.Event) error {
//	    return store.Save(ctx, ev.Data.RequestID, ev.Data.Transcription)
//	}, webhook.WithLogger(log), webhook.WithDeduplicator(dedup))
//	if err != nil {
//	    return err
//	}
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//	defer srv.Shutdown(context.Background())
//
// Deliveries are retried by the sender until they get a 2xx answer. A
// Deduplicator (in memory, or redis.Deduplicator across replicas) skips
// request ids that were already processed.
//
// Handler can be mounted on an existing gin engine instead.
package webhook
