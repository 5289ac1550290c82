// Package server hosts HTTP endpoints on Gin behind an h2c handler, so the
// same port accepts HTTP/1.1 and cleartext HTTP/2.
//
// The webhook receiver builds on it:
//
//	srv := server.New(cfg, log)
//	srv.ApplyMiddleware()
//	srv.RegisterHealth("transcriber", "1.0.0", client)
//	srv.GinEngine().POST("/hooks", handler)
//	err := srv.Start(ctx)
//
// Middleware lives in server/middleware: panic recovery, request ids,
// body size limits and request logging.
package server
