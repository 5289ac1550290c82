// Package bootstrap runs a program's components with uniform startup,
// signal handling and graceful shutdown.
//
//	var cfg receiverConfig
//	if err := config.Load("stt-webhook", &cfg); err != nil {
//	    return err
//	}
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	_ = app.Register(serverComponent)
//	return app.Run(ctx)
package bootstrap
