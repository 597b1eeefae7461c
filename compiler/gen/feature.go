package gen

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// FeatureGlue emits the Go glue source next to every mapper descriptor.
	FeatureGlue = Feature{
		Name:        "glue",
		Stage:       Stable,
		Default:     true,
		Description: "Glue generates a typed Go mapper exposing the mapping at runtime",
	}

	// FeatureSidecar keeps the hand-authored fragments of every mapper in a
	// msgpack file, so they survive the deletion of the generated output.
	FeatureSidecar = Feature{
		Name:        "sidecar",
		Stage:       Alpha,
		Default:     false,
		Description: "Sidecar stores preserved mapper fragments in a separate msgpack file",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureGlue,
		FeatureSidecar,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development.
	Experimental

	// Alpha features are usable, but their output may still change.
	Alpha

	// Beta features are not expected to change their output.
	Beta

	// Stable features are Beta features that have been in use for a while.
	Stable
)

// A Feature of the mapgen codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}

// FeatureByName returns the feature-flag with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// DefaultFeatures returns the features that are enabled by default.
func DefaultFeatures() []Feature {
	var fs []Feature
	for _, f := range AllFeatures {
		if f.Default {
			fs = append(fs, f)
		}
	}
	return fs
}

// MarshalYAML encodes a feature by its name.
func (f Feature) MarshalYAML() (any, error) {
	return f.Name, nil
}

// UnmarshalYAML resolves a feature from its name.
func (f *Feature) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	feat, ok := FeatureByName(name)
	if !ok {
		return fmt.Errorf("unknown feature %q (line %d)", name, value.Line)
	}
	*f = feat
	return nil
}
