package selection

import (
	"fmt"

	"github.com/kilianp07/edgecover/core/factory"
	"github.com/kilianp07/edgecover/core/logger"
)

// Legacy names accepted as aliases of the built-in selectors.
const (
	AliasGroupAdjustment = "devicesSelection"
	AliasMinCoveredFirst = "greedyMSC"
	AliasEnergyWeighted  = "ESR"
)

var registry = factory.NewRegistry[Selector]()

func init() {
	_ = registry.Register(GroupAdjustmentName, func(map[string]any) (Selector, error) {
		return NewGroupAdjustment(nil), nil
	})
	_ = registry.Register(MinCoveredFirstName, func(map[string]any) (Selector, error) {
		return NewMinCoveredFirst(nil), nil
	})
	_ = registry.Register(EnergyWeightedName, func(map[string]any) (Selector, error) {
		return NewEnergyWeighted(nil), nil
	})
	_ = registry.Alias(AliasGroupAdjustment, GroupAdjustmentName)
	_ = registry.Alias(AliasMinCoveredFirst, MinCoveredFirstName)
	_ = registry.Alias(AliasEnergyWeighted, EnergyWeightedName)
}

// Register adds a selector factory under name.
func Register(name string, f factory.Factory[Selector]) error {
	return registry.Register(name, f)
}

// Names lists the registered selector names, aliases excluded.
func Names() []string { return registry.Names() }

// Lookup returns a new selector registered under name or one of its aliases.
func Lookup(name string) (Selector, error) {
	return New(name, nil)
}

// New returns a new selector registered under name, logging through log when
// the selector supports it.
func New(name string, log logger.Logger) (Selector, error) {
	if _, ok := registry.Resolve(name); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	s, err := registry.Create(factory.ModuleConfig{Type: name})
	if err != nil {
		return nil, err
	}
	if ls, ok := s.(loggerSetter); ok && log != nil {
		ls.SetLogger(log)
	}
	return s, nil
}
