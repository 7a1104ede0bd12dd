package tariff

import (
	"fmt"
	"strings"
)

// Registry is a read-only set of named schedules. It is built once at
// startup and safe for concurrent use.
type Registry struct {
	defaultID string
	order     []string
	byID      map[string]Schedule
}

// NewRegistry validates schedules and indexes them by ID. defaultID is used
// when a lookup is made with an empty ID.
func NewRegistry(defaultID string, schedules ...Schedule) (*Registry, error) {
	r := &Registry{
		defaultID: defaultID,
		byID:      make(map[string]Schedule, len(schedules)),
	}
	for _, s := range schedules {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate schedule id %q", ErrInvalidSchedule, s.ID)
		}
		r.byID[s.ID] = s
		r.order = append(r.order, s.ID)
	}
	if _, ok := r.byID[defaultID]; !ok {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownSchedule, defaultID)
	}
	return r, nil
}

// DefaultRegistry holds the canonical old and new schedules, defaulting to new.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(ScheduleNew, OldSchedule(), NewSchedule())
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the schedule registered under id.
func (r *Registry) Lookup(id string) (Schedule, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		id = r.defaultID
	}
	s, ok := r.byID[id]
	if !ok {
		return Schedule{}, fmt.Errorf("%w: %q", ErrUnknownSchedule, id)
	}
	return s, nil
}

// DefaultID returns the ID used for empty lookups.
func (r *Registry) DefaultID() string {
	return r.defaultID
}

// Schedules returns all schedules in registration order.
func (r *Registry) Schedules() []Schedule {
	out := make([]Schedule, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
