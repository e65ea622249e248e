// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface and registers its routes when
// loaded. The Manager keeps features in registration order and loads the
// enabled ones through LoadAll.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Usage
//
//	mgr := loader.NewManager()
//	mgr.Register(comparison.NewFeature(svc))
//	loaded, err := mgr.LoadAll(app)
package loader
