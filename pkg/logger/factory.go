package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/logkit/pkg/attrs"
	"github.com/dmitrymomot/logkit/pkg/severity"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for production log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs human-readable logs for development debugging.
	FormatText Format = "text"
)

// Option configures logger creation.
type Option func(*config)

// WithLevel sets the initial ambient severity threshold.
func WithLevel(level severity.Severity) Option {
	return func(c *config) { c.level = level }
}

// WithFormat sets output format.
// Panics for invalid formats to enforce fail-fast initialization -
// misconfiguration should prevent startup rather than cause runtime errors.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

// WithTextFormatter selects human-readable text output.
func WithTextFormatter() Option {
	return func(c *config) { c.format = FormatText }
}

// WithJSONFormatter selects JSON output.
func WithJSONFormatter() Option {
	return func(c *config) { c.format = FormatJSON }
}

// WithOutput sets a custom output destination, ignoring nil writers.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithLabel sets the initial label attached to records.
func WithLabel(label string) Option {
	return func(c *config) { c.label = label }
}

// WithTags merges static attributes into every record. Tags are
// flattened on the way in.
func WithTags(tags attrs.Map) Option {
	return func(c *config) {
		if len(tags) > 0 {
			c.tags = attrs.Merge(c.tags, attrs.Flatten(tags))
		}
	}
}

// WithHandlerOptions allows fine-grained control over slog behavior.
// Nil options are ignored. The options are copied at construction; the
// copy's Level field is overridden by the logger's own dynamic LevelVar
// so SetLevel and WithLevel keep working.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *config) {
		if opts != nil {
			c.handlerOptions = opts
		}
	}
}

// WithContextExtractors registers functions that inject dynamic
// attributes from context into every record. Nil extractors are filtered
// out.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// WithContextValue adds an extractor publishing the context value stored
// under key as the named attribute.
func WithContextValue(name string, key any) Option {
	return func(c *config) {
		if name == "" || key == nil {
			return
		}
		c.extractors = append(c.extractors, contextValueExtractor(name, key))
	}
}

// WithDevelopment configures development defaults: text format and debug
// level for detailed diagnostics.
func WithDevelopment(service string) Option {
	return func(c *config) {
		if service == "" {
			return
		}
		c.level = severity.Debug
		c.format = FormatText
		c.tags = attrs.Merge(c.tags, attrs.Map{"service": service, "env": "development"})
	}
}

// WithStaging configures staging defaults: JSON format and info level.
func WithStaging(service string) Option {
	return func(c *config) {
		if service == "" {
			return
		}
		c.level = severity.Info
		c.format = FormatJSON
		c.tags = attrs.Merge(c.tags, attrs.Map{"service": service, "env": "staging"})
	}
}

// WithProduction configures production defaults: JSON format and info
// level to reduce noise.
func WithProduction(service string) Option {
	return func(c *config) {
		if service == "" {
			return
		}
		c.level = severity.Info
		c.format = FormatJSON
		c.tags = attrs.Merge(c.tags, attrs.Map{"service": service, "env": "production"})
	}
}

type config struct {
	level          severity.Severity
	format         Format
	output         io.Writer
	label          string
	tags           attrs.Map
	handlerOptions *slog.HandlerOptions
	extractors     []ContextExtractor
}

// defaultConfig provides production-safe defaults: JSON format at Info.
func defaultConfig() *config {
	return &config{
		level:  severity.Info,
		format: FormatJSON,
		output: os.Stdout,
	}
}

// New creates a configured Logger. The underlying handler is selected by
// format, driven by a dynamic LevelVar, and wrapped with the extractor
// decorator so context attributes are injected per record.
func New(opts ...Option) *Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	levelVar := new(slog.LevelVar)
	levelVar.Set(cfg.level.Level())

	handlerOpts := &slog.HandlerOptions{ReplaceAttr: replaceLevelNames}
	if cfg.handlerOptions != nil {
		copied := *cfg.handlerOptions
		handlerOpts = &copied
	}
	handlerOpts.Level = levelVar

	var handler slog.Handler
	if cfg.format == FormatText {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	return &Logger{
		handler:  newExtractorHandler(handler, cfg.extractors...),
		levelVar: levelVar,
		label:    cfg.label,
		static:   cfg.tags,
		out:      cfg.output,
	}
}
