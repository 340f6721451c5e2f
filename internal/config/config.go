// Package config loads threshold profiles. Built-in presets (strict,
// default, lenient) are always available; a YAML file can override them
// or add named profiles derived from one of them.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/safeaudit-core/internal/core/domain"
)

// File is the on-disk layout of a threshold profile file
type File struct {
	// DefaultProfile is used when no profile is requested
	DefaultProfile string             `yaml:"default_profile"`
	Profiles       map[string]Profile `yaml:"profiles"`
}

// Profile is one named threshold set. Fields left out of Thresholds keep
// the values of the Base preset.
type Profile struct {
	Base        string    `yaml:"base"`
	Description string    `yaml:"description"`
	Thresholds  yaml.Node `yaml:"thresholds"`
}

// Profiles holds the resolved threshold sets
type Profiles struct {
	defaultName  string
	sets         map[string]domain.Thresholds
	descriptions map[string]string
}

var builtinDescriptions = map[string]string{
	domain.PresetStrict:  "Tightest limits, for regulator-facing audits",
	domain.PresetDefault: "Balanced limits for routine site inspections",
	domain.PresetLenient: "Relaxed limits for onboarding and pilot sites",
}

// Builtin returns the built-in presets only
func Builtin() *Profiles {
	descriptions := make(map[string]string, len(builtinDescriptions))
	for name, d := range builtinDescriptions {
		descriptions[name] = d
	}
	return &Profiles{
		defaultName:  domain.PresetDefault,
		sets:         domain.Presets(),
		descriptions: descriptions,
	}
}

// Load reads a profile file. An empty path returns the built-in presets.
func Load(path string) (*Profiles, error) {
	if path == "" {
		return Builtin(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read threshold file: %w", err)
	}
	return Parse(data)
}

// Parse resolves profiles from YAML. Every profile is validated here so a
// bad file fails at startup.
func Parse(data []byte) (*Profiles, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: failed to parse threshold file: %v", domain.ErrInvalidConfig, err)
	}

	p := Builtin()
	names := make([]string, 0, len(file.Profiles))
	for name := range file.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		profile := file.Profiles[name]
		baseName := profile.Base
		if baseName == "" {
			baseName = name
			if _, ok := p.sets[baseName]; !ok {
				baseName = domain.PresetDefault
			}
		}
		base, ok := domain.Presets()[baseName]
		if !ok {
			return nil, fmt.Errorf("%w: profile %q has unknown base %q", domain.ErrInvalidConfig, name, baseName)
		}

		if !profile.Thresholds.IsZero() {
			if err := profile.Thresholds.Decode(&base); err != nil {
				return nil, fmt.Errorf("%w: profile %q: %v", domain.ErrInvalidConfig, name, err)
			}
		}
		if err := base.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		p.sets[name] = base
		if profile.Description != "" {
			p.descriptions[name] = profile.Description
		}
	}

	if file.DefaultProfile != "" {
		if _, ok := p.sets[file.DefaultProfile]; !ok {
			return nil, fmt.Errorf("%w: default profile %q is not defined", domain.ErrInvalidConfig, file.DefaultProfile)
		}
		p.defaultName = file.DefaultProfile
	}
	return p, nil
}

// ErrUnknownProfile is returned by Resolve for a name with no profile
var ErrUnknownProfile = errors.New("unknown threshold profile")

// Resolve returns the named profile, or the default profile for "".
func (p *Profiles) Resolve(name string) (domain.Thresholds, error) {
	if name == "" {
		name = p.defaultName
	}
	th, ok := p.sets[name]
	if !ok {
		return domain.Thresholds{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return th, nil
}

// DefaultName returns the profile used when none is requested
func (p *Profiles) DefaultName() string {
	return p.defaultName
}

// All returns a copy of every profile keyed by name
func (p *Profiles) All() map[string]domain.Thresholds {
	out := make(map[string]domain.Thresholds, len(p.sets))
	for name, th := range p.sets {
		out[name] = th
	}
	return out
}

// Descriptions returns the description of every profile that has one
func (p *Profiles) Descriptions() map[string]string {
	out := make(map[string]string, len(p.descriptions))
	for name, d := range p.descriptions {
		out[name] = d
	}
	return out
}

// Names returns the profile names in sorted order
func (p *Profiles) Names() []string {
	names := make([]string, 0, len(p.sets))
	for name := range p.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
