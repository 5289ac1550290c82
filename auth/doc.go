// Package auth guards the receiver's read API with HMAC-signed JWT bearer
// tokens carrying scopes.
//
//	tokens, _ := auth.NewTokens(cfg.Auth)
//	api := engine.Group("", tokens.Middleware(auth.ScopeRead))
//	arc.RegisterRoutes(api)
package auth
