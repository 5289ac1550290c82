// Package provider is a small generic framework for swappable backends.
//
// A Registry maps names to factories, a Manager initializes providers from
// configuration and a Selector chooses one per request:
//
//	reg := provider.NewRegistry[transcription.Provider]()
//	mgr := provider.NewManager(reg, &provider.HealthCheckSelector[transcription.Provider]{})
//	mgr.Register("elevenlabs", elevenlabs.Factory())
//	if err := mgr.Initialize("elevenlabs", cfg); err != nil {
//	    return err
//	}
//	p, err := mgr.Get(ctx)
package provider
