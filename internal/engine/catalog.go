package engine

import (
	"log/slog"
	"sync"
	"time"

	"fee_calculator/internal/domain"
	"fee_calculator/internal/rules"
)

// DefaultCacheTTL bounds how long the active-rule view may be served without
// recomputing it from the catalog.
const DefaultCacheTTL = 30 * time.Minute

// Catalog owns the registered rule processors and a memoized view of the
// currently active subset. Toggling a rule's status and evicting the cached
// view happen under one lock, so readers observe either the pre-toggle or the
// post-toggle state, never a torn one.
type Catalog struct {
	mu         sync.RWMutex
	processors []rules.Processor
	cached     []rules.Processor
	expiresAt  time.Time
	ttl        time.Duration
	logger     *slog.Logger
}

func NewCatalog(ttl time.Duration, logger *slog.Logger, processors ...rules.Processor) *Catalog {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Catalog{
		processors: processors,
		ttl:        ttl,
		logger:     logger,
	}
}

// Active returns the currently active processors in registration order,
// recomputing the cached view when it is missing or past its TTL.
func (c *Catalog) Active() ([]rules.Processor, error) {
	c.mu.RLock()
	if c.cached != nil && time.Now().Before(c.expiresAt) {
		view := c.cached
		c.mu.RUnlock()
		return view, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && time.Now().Before(c.expiresAt) {
		return c.cached, nil
	}

	view := make([]rules.Processor, 0, len(c.processors))
	for _, p := range c.processors {
		if p.Active() {
			view = append(view, p)
		}
	}

	c.cached = view
	c.expiresAt = time.Now().Add(c.ttl)
	c.logger.Debug("Rebuilt active rule cache", slog.Int("active_rules", len(view)))

	return view, nil
}

// SetActive toggles a rule's status and evicts the cached view in the same
// critical section. Returns false when no processor has the given id.
func (c *Catalog) SetActive(ruleID int, active bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.processors {
		if p.RuleID() != ruleID {
			continue
		}

		p.SetActive(active)
		c.cached = nil

		action := "Deactivated"
		if active {
			action = "Activated"
		}
		c.logger.Info(action+" rule processor",
			slog.Int("rule_id", ruleID),
			slog.String("rule_name", p.RuleName()))
		return true
	}

	return false
}

// Descriptors lists every registered processor, active or not, in
// registration order.
func (c *Catalog) Descriptors() []domain.RuleDescriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.RuleDescriptor, 0, len(c.processors))
	for _, p := range c.processors {
		out = append(out, domain.RuleDescriptor{
			ID:          p.RuleID(),
			Name:        p.RuleName(),
			Description: p.Description(),
			Type:        p.RuleType(),
			Priority:    p.Priority(),
			IsActive:    p.Active(),
			Parameters:  p.Parameters(),
		})
	}
	return out
}
