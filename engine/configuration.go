package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/liamcoop/decisions/binding"
	"github.com/liamcoop/decisions/decision"
	"github.com/liamcoop/decisions/internal/logger"
)

// Option customises a Configuration
type Option func(*Configuration)

// WithLogger sets the logger used by the configured engine
func WithLogger(l *slog.Logger) Option {
	return func(c *Configuration) { c.logger = l }
}

// WithSettings replaces the default settings
func WithSettings(s Settings) Option {
	return func(c *Configuration) { c.settings = s }
}

// WithDecisionStore replaces the in-memory decision store
func WithDecisionStore(s DecisionStore) Option {
	return func(c *Configuration) { c.store = s }
}

// WithProgramCache replaces the in-memory program cache built from the settings
func WithProgramCache(pc ProgramCache) Option {
	return func(c *Configuration) { c.cache = pc }
}

// Configuration collects method bindings and produces an Engine
type Configuration struct {
	bindings []binding.MethodBinding
	logger   *slog.Logger
	settings Settings
	store    DecisionStore
	cache    ProgramCache
}

// NewConfiguration creates an empty configuration with default settings
func NewConfiguration(opts ...Option) *Configuration {
	c := &Configuration{
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MethodBindings appends bindings in the given order
func (c *Configuration) MethodBindings(bindings []binding.MethodBinding) *Configuration {
	c.bindings = append(c.bindings, bindings...)
	return c
}

// Configure validates the bindings and creates the engine.
// When two bindings share a name the last one wins.
func (c *Configuration) Configure() (*Engine, error) {
	log := c.logger
	if log == nil {
		log = logger.Default()
	}

	en := &Engine{
		id:       uuid.New(),
		logger:   log,
		bindings: append([]binding.MethodBinding(nil), c.bindings...),
		registry: make(map[string]binding.MethodBinding, len(c.bindings)),
		store:    c.store,
		cache:    c.cache,
	}
	en.logger = en.logger.With("engine", en.id.String())

	var resolved []binding.MethodBinding
	position := make(map[string]int, len(c.bindings))
	for i, b := range c.bindings {
		if b == nil {
			return nil, fmt.Errorf("method binding %d is nil: %w", i, binding.ErrInvalidBinding)
		}
		if err := validateBindingName(b.Name()); err != nil {
			return nil, fmt.Errorf("method binding %d: %w", i, err)
		}

		if pos, exists := position[b.Name()]; exists {
			en.logger.Warn("duplicate method binding, replacing earlier declaration", "binding", b.Name())
			resolved[pos] = b
		} else {
			position[b.Name()] = len(resolved)
			resolved = append(resolved, b)
		}
		en.registry[b.Name()] = b
		en.logger.Debug("registered method binding", "binding", b.Name(), "kind", bindingKind(b))
	}

	if en.store == nil {
		en.store = NewInMemoryDecisionStore()
	}
	if en.cache == nil {
		en.cache = NewInMemoryProgramCache(CacheConfig{
			TTL:        c.settings.CacheTTL,
			MaxEntries: c.settings.CacheSize,
		})
	}

	en.providers = map[decision.ExpressionType]provider{
		decision.ExpressionTypeCEL:  newCELProvider(resolved, c.settings.CostLimit, c.settings.CacheSize),
		decision.ExpressionTypeExpr: newExprProvider(resolved),
	}

	return en, nil
}

func bindingKind(b binding.MethodBinding) string {
	switch b.(type) {
	case *binding.Static:
		return "static"
	case *binding.Instance:
		return "instance"
	default:
		return fmt.Sprintf("%T", b)
	}
}
