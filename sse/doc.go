// Package sse streams transcripts to browsers and other subscribers as they
// arrive by webhook, using Server-Sent Events.
//
//	hub := sse.NewHub()
//	_ = hub.Start(ctx)
//	defer hub.Stop(ctx)
//
//	srv, _ := webhook.NewServer(cfg, webhook.Chain(arc.Handler(), hub.WebhookHandler()))
//	srv.GinEngine().GET("/events", hub.Handler())
//
// Subscribers may narrow the feed with ?request_id=<glob>.
package sse
