// Package archive keeps transcripts delivered by webhook in object storage
// and serves them back over HTTP.
//
//	store, _ := storage.New(ctx, cfg.Storage, log) // with storage/local or storage/s3 imported
//	arc := archive.New(store)
//
// A SQLite index makes the archive searchable by language, text and time:
//
//	ix, _ := archive.NewIndex(db)
//	arc := archive.New(store, archive.WithIndex(ix))
//
//	srv, _ := webhook.NewServer(cfg.Webhook, arc.Handler())
//	arc.RegisterRoutes(srv.GinEngine())
package archive
