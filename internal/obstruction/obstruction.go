// Package obstruction tracks which lanes of which directions of travel an
// incident blocks and composes the sentence the reports print for it.
package obstruction

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/provial/novedades/internal/util"
	"github.com/provial/novedades/pkg/core"
)

const (
	// MaxLanes is the number of lanes a direction can have obstructed.
	MaxLanes = 3
	// NoObstruction is the description when no direction contributes a phrase.
	NoObstruction = "Sin obstrucciones registradas."
)

var (
	ErrDuplicateLane     = errors.New("lane already registered")
	ErrCapacityExceeded  = errors.New("lane capacity exceeded")
	ErrInvalidPercent    = errors.New("blockage percent must be between 1 and 100")
	ErrDirectionInactive = errors.New("direction is not active")
	ErrOffRoad           = errors.New("direction is marked off-road")
	ErrLaneNotFound      = errors.New("lane not registered")
	ErrUnknownDirection  = errors.New("unknown direction")
	ErrUnknownLane       = errors.New("unknown lane")

	// ErrSingleLane is the capacity error of a single-lane road.
	ErrSingleLane = fmt.Errorf("single-lane road takes one obstructed lane: %w", ErrCapacityExceeded)
)

// LaneBlock is one obstructed lane.
type LaneBlock struct {
	Lane    core.Lane `json:"lane" yaml:"carril"`
	Percent int       `json:"percent" yaml:"porcentaje"`
}

// DirectionState is a copy of the state held for one active direction.
type DirectionState struct {
	Direction  core.Direction
	OffRoad    bool
	SingleLane bool
	Lanes      []LaneBlock
}

type direction struct {
	offRoad    bool
	singleLane bool
	lanes      []LaneBlock // insertion order
}

func (d *direction) indexOf(l core.Lane) int {
	for i, b := range d.lanes {
		if b.Lane == l {
			return i
		}
	}
	return -1
}

func (d *direction) capacity() int {
	if d.singleLane {
		return 1
	}
	return MaxLanes
}

// Model holds the primary direction, the both-directions flag and the state of
// every active direction in activation order.
type Model struct {
	primary core.Direction
	both    bool
	active  []core.Direction
	state   map[core.Direction]*direction
}

// New returns a model with no direction selected.
func New() *Model {
	return &Model{state: make(map[core.Direction]*direction)}
}

// SetPrimaryDirection selects the main direction and resets every
// per-direction state. An empty direction deselects. The both-directions flag
// is kept and re-applied.
func (m *Model) SetPrimaryDirection(d core.Direction) error {
	if d != "" && !d.Valid() {
		return fmt.Errorf("%q: %w", d, ErrUnknownDirection)
	}
	m.primary = d
	m.active = nil
	m.state = make(map[core.Direction]*direction)
	if d == "" {
		return nil
	}
	m.activate(d)
	if m.both {
		if o, ok := d.Opposite(); ok {
			m.activate(o)
		}
	}
	return nil
}

// SetBothDirections adds or removes the opposite of the primary direction.
// The primary direction keeps its state; the opposite starts empty when added
// and its state is discarded when removed.
func (m *Model) SetBothDirections(on bool) {
	m.both = on
	if m.primary == "" {
		return
	}
	o, _ := m.primary.Opposite()
	_, present := m.state[o]
	switch {
	case on && !present:
		m.activate(o)
	case !on && present:
		delete(m.state, o)
		m.active = []core.Direction{m.primary}
	}
}

func (m *Model) activate(d core.Direction) {
	m.active = append(m.active, d)
	m.state[d] = &direction{}
}

// Primary returns the selected main direction, empty when none.
func (m *Model) Primary() core.Direction {
	return m.primary
}

// BothDirections reports the both-directions flag.
func (m *Model) BothDirections() bool {
	return m.both
}

// ActiveDirections returns the active directions in activation order.
func (m *Model) ActiveDirections() []core.Direction {
	out := make([]core.Direction, len(m.active))
	copy(out, m.active)
	return out
}

func (m *Model) lookup(d core.Direction) (*direction, error) {
	s, ok := m.state[d]
	if !ok {
		return nil, fmt.Errorf("%q: %w", d, ErrDirectionInactive)
	}
	return s, nil
}

// AddLane registers an obstructed lane for an active direction. On failure the
// model is unchanged.
func (m *Model) AddLane(d core.Direction, l core.Lane, percent int) error {
	s, err := m.lookup(d)
	if err != nil {
		return err
	}
	if !slices.Contains(core.Lanes, l) {
		return fmt.Errorf("%q: %w", l, ErrUnknownLane)
	}
	if s.offRoad {
		return fmt.Errorf("%s: %w", d, ErrOffRoad)
	}
	if len(s.lanes) >= s.capacity() {
		if s.singleLane {
			return fmt.Errorf("%s: %w", d, ErrSingleLane)
		}
		return fmt.Errorf("%s has %d of %d lanes: %w", d, len(s.lanes), s.capacity(), ErrCapacityExceeded)
	}
	if s.indexOf(l) >= 0 {
		return fmt.Errorf("%s lane %s: %w", d, l, ErrDuplicateLane)
	}
	if percent < 1 || percent > 100 {
		return fmt.Errorf("%d: %w", percent, ErrInvalidPercent)
	}
	s.lanes = append(s.lanes, LaneBlock{Lane: l, Percent: percent})
	return nil
}

// RemoveLane drops a registered lane of an active direction.
func (m *Model) RemoveLane(d core.Direction, l core.Lane) error {
	s, err := m.lookup(d)
	if err != nil {
		return err
	}
	i := s.indexOf(l)
	if i < 0 {
		return fmt.Errorf("%s lane %s: %w", d, l, ErrLaneNotFound)
	}
	s.lanes = append(s.lanes[:i], s.lanes[i+1:]...)
	return nil
}

// SetOffRoad marks a direction as having the vehicle off the roadway.
// Enabling it clears the lanes of that direction.
func (m *Model) SetOffRoad(d core.Direction, on bool) error {
	s, err := m.lookup(d)
	if err != nil {
		return err
	}
	s.offRoad = on
	if on {
		s.lanes = nil
	}
	return nil
}

// SetSingleLane flags a direction as a single-lane road, which caps it to one
// obstructed lane.
func (m *Model) SetSingleLane(d core.Direction, on bool) error {
	s, err := m.lookup(d)
	if err != nil {
		return err
	}
	if on && len(s.lanes) > 1 {
		return fmt.Errorf("%s has %d lanes registered: %w", d, len(s.lanes), ErrSingleLane)
	}
	s.singleLane = on
	return nil
}

// State returns a copy of the state of an active direction.
func (m *Model) State(d core.Direction) (DirectionState, error) {
	s, err := m.lookup(d)
	if err != nil {
		return DirectionState{}, err
	}
	lanes := make([]LaneBlock, len(s.lanes))
	copy(lanes, s.lanes)
	return DirectionState{Direction: d, OffRoad: s.offRoad, SingleLane: s.singleLane, Lanes: lanes}, nil
}

// Reset deselects everything, including the both-directions flag.
func (m *Model) Reset() {
	m.both = false
	_ = m.SetPrimaryDirection("")
}

// Description composes the obstruction sentence.
func (m *Model) Description() string {
	var parts []string
	for _, d := range m.active {
		if p := phrase(d, m.state[d]); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return NoObstruction
	}
	return util.CapFirst(strings.Join(parts, "; "))
}

func phrase(d core.Direction, s *direction) string {
	toward := "con sentido hacia el " + strings.ToLower(string(d))
	switch {
	case s.offRoad:
		return "un vehículo fuera de la vía " + toward
	case len(s.lanes) == 0:
		return ""
	case s.singleLane:
		return fmt.Sprintf("%d%% del carril %s", s.lanes[0].Percent, toward)
	case len(s.lanes) == 1:
		b := s.lanes[0]
		return fmt.Sprintf("el carril %s obstruido en un %d%% %s", strings.ToLower(string(b.Lane)), b.Percent, toward)
	}
	items := make([]string, len(s.lanes))
	for i, b := range s.lanes {
		items[i] = fmt.Sprintf("el %s (%d%%)", strings.ToLower(string(b.Lane)), b.Percent)
	}
	return fmt.Sprintf("los carriles %s obstruidos %s", util.JoinList(items, "y"), toward)
}

// DirectionText lists the active directions for the report's direction line,
// e.g. "Norte, sur". Empty when no direction is active.
func (m *Model) DirectionText() string {
	names := make([]string, len(m.active))
	for i, d := range m.active {
		names[i] = string(d)
	}
	return util.Capitalize(strings.Join(names, ", "))
}
