// Package factory provides a small generic registry used to instantiate modules
// from configuration. Modules are defined by a type string and a map of raw
// settings. Factories decode the settings into typed structs and return the
// concrete implementation. Selectors and metrics sinks are both built this way.
//
// Example usage:
//
//	reg := factory.NewRegistry[selection.Selector]()
//	reg.Register("energy-weighted", func(map[string]any) (selection.Selector, error) {
//	    return selection.NewEnergyWeighted(nil), nil
//	})
//	_ = reg.Alias("ESR", "energy-weighted")
//	s, err := reg.Create(factory.ModuleConfig{Type: "ESR"})
package factory
