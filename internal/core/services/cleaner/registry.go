package cleaner

import (
	"sort"
	"sync"

	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

// CleanerFactory is a function type that creates a cleaner profile instance
type CleanerFactory func(config map[string]interface{}) (BaseCleaner, error)

// Registry manages all available cleaner profiles
type Registry struct {
	mu       sync.RWMutex
	cleaners map[string]CleanerFactory
	aliases  map[string]string
}

// Global registry instance
var globalRegistry = &Registry{
	cleaners: make(map[string]CleanerFactory),
	aliases:  make(map[string]string),
}

// Register adds a cleaner profile to the registry with optional aliases
func Register(version string, factory CleanerFactory, aliases ...string) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()

	globalRegistry.cleaners[version] = factory

	for _, alias := range aliases {
		globalRegistry.aliases[alias] = version
	}
}

// Get retrieves a cleaner factory by version or alias
func Get(identifier string) (CleanerFactory, error) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	if version, exists := globalRegistry.aliases[identifier]; exists {
		identifier = version
	}

	factory, exists := globalRegistry.cleaners[identifier]
	if !exists {
		return nil, apperrors.UnknownProfile(identifier, listAvailableLocked())
	}

	return factory, nil
}

// Create creates a new cleaner profile instance
func Create(identifier string, config map[string]interface{}) (BaseCleaner, error) {
	factory, err := Get(identifier)
	if err != nil {
		return nil, err
	}

	return factory(config)
}

// ListAvailable returns all registered versions, sorted
func ListAvailable() []string {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	return listAvailableLocked()
}

func listAvailableLocked() []string {
	versions := make([]string, 0, len(globalRegistry.cleaners))
	for version := range globalRegistry.cleaners {
		versions = append(versions, version)
	}
	sort.Strings(versions)
	return versions
}

// ListAvailableWithMetadata returns detailed information about all profiles
func ListAvailableWithMetadata() map[string]map[string]interface{} {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	result := make(map[string]map[string]interface{})

	for version, factory := range globalRegistry.cleaners {
		instance, err := factory(nil)
		if err != nil {
			continue
		}

		var versionAliases []string
		for alias, v := range globalRegistry.aliases {
			if v == version {
				versionAliases = append(versionAliases, alias)
			}
		}
		sort.Strings(versionAliases)

		result[version] = map[string]interface{}{
			"name":        instance.GetName(),
			"description": instance.GetDescription(),
			"aliases":     versionAliases,
			"steps":       instance.GetPipelineSteps(),
		}
	}

	return result
}

func init() {
	Register("v1", func(config map[string]interface{}) (BaseCleaner, error) {
		return NewIcelandicProfile(config)
	}, "icelandic", "tts", "standard")

	Register("v1-simple", func(config map[string]interface{}) (BaseCleaner, error) {
		return NewIcelandicSimpleProfile(config)
	}, "icelandic-simple")

	Register("v1-strict", func(config map[string]interface{}) (BaseCleaner, error) {
		return NewIcelandicStrictProfile(config)
	}, "no-translations")
}
