package scenario

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("scenario name cannot be empty")
	ErrInvalidCapacity = errors.New("scenario capacity must be positive")
)

// Scenario is a bookable physical space (room, court, lab). It is read-only
// input for the reservation core: administration of scenarios happens outside.
type Scenario struct {
	id       uuid.UUID
	name     string
	kind     string
	location string
	capacity int
}

func NewScenario(id uuid.UUID, name, kind, location string, capacity int) (*Scenario, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Scenario{
		id:       id,
		name:     name,
		kind:     kind,
		location: location,
		capacity: capacity,
	}, nil
}

func (s *Scenario) ID() uuid.UUID    { return s.id }
func (s *Scenario) Name() string     { return s.name }
func (s *Scenario) Kind() string     { return s.kind }
func (s *Scenario) Location() string { return s.location }
func (s *Scenario) Capacity() int    { return s.capacity }
