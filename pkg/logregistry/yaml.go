package logregistry

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/logkit/pkg/attrs"
	"github.com/dmitrymomot/logkit/pkg/severity"
)

// yamlComponent mirrors one component block in a registry configuration
// file. Level stays a string here and goes through severity.Coerce so an
// invalid value fails at load time with a precise error.
type yamlComponent struct {
	Ancestor string         `yaml:"ancestor"`
	Level    *string        `yaml:"level"`
	Label    string         `yaml:"label"`
	Tags     map[string]any `yaml:"tags"`
}

type yamlConfig struct {
	Components map[string]yamlComponent `yaml:"components"`
}

// LoadYAML registers components declared in a YAML document:
//
//	components:
//	  app:
//	    level: info
//	    tags:
//	      service: checkout
//	  billing:
//	    ancestor: app
//	    level: debug
//	    label: billing
//
// Existing registrations with the same names are replaced and their
// memoized loggers dropped. Parsing or severity errors fail fast with
// ErrConfigParse before anything is registered.
func (r *Registry) LoadYAML(src io.Reader) error {
	raw, err := io.ReadAll(src)
	if err != nil {
		return errors.Join(ErrConfigParse, err)
	}

	var cfg yamlConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return errors.Join(ErrConfigParse, err)
	}

	type registration struct {
		name string
		opts []Option
	}
	regs := make([]registration, 0, len(cfg.Components))
	for name, c := range cfg.Components {
		var opts []Option
		if c.Ancestor != "" {
			opts = append(opts, WithAncestor(c.Ancestor))
		}
		if c.Level != nil {
			lvl, err := severity.Coerce(*c.Level)
			if err != nil {
				return fmt.Errorf("%w: component %q: %w", ErrConfigParse, name, err)
			}
			opts = append(opts, WithLevel(lvl))
		}
		if c.Label != "" {
			opts = append(opts, WithLabel(c.Label))
		}
		if len(c.Tags) > 0 {
			opts = append(opts, WithTags(attrs.Map(c.Tags)))
		}
		regs = append(regs, registration{name: name, opts: opts})
	}

	for _, reg := range regs {
		r.Register(reg.name, reg.opts...)
	}
	return nil
}

// LoadFile reads a YAML registry configuration from path.
func (r *Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Join(ErrConfigParse, err)
	}
	defer f.Close()
	return r.LoadYAML(f)
}
