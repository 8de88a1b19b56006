package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/liamcoop/decisions/decision"
)

// DecisionStore manages registered decisions
type DecisionStore interface {
	// Add a new decision
	Add(d *decision.Decision) error

	// Get a decision by ID
	Get(id string) (*decision.Decision, error)

	// List all decisions ordered by ID
	List() ([]*decision.Decision, error)

	// Update replaces an existing decision with the same ID
	Update(d *decision.Decision) error

	// Delete a decision
	Delete(id string) error
}

// InMemoryDecisionStore implements DecisionStore using an in-memory map
// Thread-safe with RWMutex
type InMemoryDecisionStore struct {
	decisions map[string]*decision.Decision
	mu        sync.RWMutex
}

// NewInMemoryDecisionStore creates a new in-memory decision store
func NewInMemoryDecisionStore() *InMemoryDecisionStore {
	return &InMemoryDecisionStore{
		decisions: make(map[string]*decision.Decision),
	}
}

// Add adds a new decision to the store
func (s *InMemoryDecisionStore) Add(d *decision.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.decisions[d.ID()]; exists {
		return fmt.Errorf("decision with ID %s: %w", d.ID(), ErrDecisionExists)
	}

	s.decisions[d.ID()] = d
	return nil
}

// Get retrieves a decision by ID
func (s *InMemoryDecisionStore) Get(id string) (*decision.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, exists := s.decisions[id]
	if !exists {
		return nil, fmt.Errorf("decision with ID %s: %w", id, ErrDecisionNotFound)
	}
	return d, nil
}

// List returns all decisions ordered by ID
func (s *InMemoryDecisionStore) List() ([]*decision.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*decision.Decision, 0, len(s.decisions))
	for _, d := range s.decisions {
		list = append(list, d)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID() < list[j].ID() })
	return list, nil
}

// Update replaces an existing decision
func (s *InMemoryDecisionStore) Update(d *decision.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.decisions[d.ID()]; !exists {
		return fmt.Errorf("decision with ID %s: %w", d.ID(), ErrDecisionNotFound)
	}

	s.decisions[d.ID()] = d
	return nil
}

// Delete removes a decision from the store
func (s *InMemoryDecisionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.decisions[id]; !exists {
		return fmt.Errorf("decision with ID %s: %w", id, ErrDecisionNotFound)
	}

	delete(s.decisions, id)
	return nil
}
