// Package registry holds the vehicles, tow trucks and adjusters of an
// incident. Tow trucks and adjusters point at vehicles by position, so every
// change to the vehicle sequence is propagated to those references.
package registry

import (
	"errors"
	"fmt"

	"github.com/provial/novedades/pkg/core"
)

var (
	// ErrNotFound is returned when an index does not address an entry.
	ErrNotFound = errors.New("no entry at index")
	// ErrOutOfBounds is returned by Swap when either position is outside the sequence.
	ErrOutOfBounds = errors.New("index out of bounds")
	// ErrInvalidAssignment is returned when a tow truck or adjuster references a missing vehicle.
	ErrInvalidAssignment = errors.New("assignment does not reference an existing vehicle")
)

// Registry is the ordered set of entities of one incident report.
// It is not safe for concurrent use; the form controller is its only writer.
type Registry struct {
	vehicles  list[core.Vehicle]
	towTrucks list[core.TowTruck]
	adjusters list[core.Adjuster]
}

// Snapshot is a detached copy of the registry contents.
type Snapshot struct {
	Vehicles  []core.Vehicle
	TowTrucks []core.TowTruck
	Adjusters []core.Adjuster
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// AddVehicle appends v and returns its position.
func (r *Registry) AddVehicle(v core.Vehicle) int {
	return r.vehicles.add(v.Clone())
}

// Vehicle returns a copy of the vehicle at i.
func (r *Registry) Vehicle(i int) (core.Vehicle, error) {
	v, ok := r.vehicles.get(i)
	if !ok {
		return core.Vehicle{}, fmt.Errorf("vehicle %d: %w", i, ErrNotFound)
	}
	return v.Clone(), nil
}

// UpdateVehicle replaces the vehicle at i.
func (r *Registry) UpdateVehicle(i int, v core.Vehicle) error {
	if !r.vehicles.update(i, v.Clone()) {
		return fmt.Errorf("vehicle %d: %w", i, ErrNotFound)
	}
	return nil
}

// RemoveVehicle deletes the vehicle at i. Tow trucks and adjusters that
// pointed at i become unassigned; those pointing past i shift down by one.
func (r *Registry) RemoveVehicle(i int) error {
	if !r.vehicles.remove(i) {
		return fmt.Errorf("vehicle %d: %w", i, ErrNotFound)
	}
	for k := range r.towTrucks.items {
		r.towTrucks.items[k].Vehicle = shiftAfterRemoval(r.towTrucks.items[k].Vehicle, i)
	}
	for k := range r.adjusters.items {
		r.adjusters.items[k].Vehicle = shiftAfterRemoval(r.adjusters.items[k].Vehicle, i)
	}
	return nil
}

// SwapVehicles exchanges the vehicles at i and j. Assignments follow the
// vehicles they reference.
func (r *Registry) SwapVehicles(i, j int) error {
	if !r.vehicles.swap(i, j) {
		return fmt.Errorf("swap %d and %d of %d vehicles: %w", i, j, r.vehicles.len(), ErrOutOfBounds)
	}
	for k := range r.towTrucks.items {
		r.towTrucks.items[k].Vehicle = swapRef(r.towTrucks.items[k].Vehicle, i, j)
	}
	for k := range r.adjusters.items {
		r.adjusters.items[k].Vehicle = swapRef(r.adjusters.items[k].Vehicle, i, j)
	}
	return nil
}

// Vehicles returns a copy of the vehicle sequence.
func (r *Registry) Vehicles() []core.Vehicle {
	out := make([]core.Vehicle, 0, r.vehicles.len())
	for _, v := range r.vehicles.items {
		out = append(out, v.Clone())
	}
	return out
}

// VehicleCount returns the number of registered vehicles.
func (r *Registry) VehicleCount() int {
	return r.vehicles.len()
}

// AddTowTruck appends t and returns its position.
func (r *Registry) AddTowTruck(t core.TowTruck) (int, error) {
	if err := r.checkRef(t.Vehicle); err != nil {
		return 0, fmt.Errorf("tow truck: %w", err)
	}
	return r.towTrucks.add(t), nil
}

// TowTruck returns the tow truck at i.
func (r *Registry) TowTruck(i int) (core.TowTruck, error) {
	t, ok := r.towTrucks.get(i)
	if !ok {
		return core.TowTruck{}, fmt.Errorf("tow truck %d: %w", i, ErrNotFound)
	}
	return t, nil
}

// UpdateTowTruck replaces the tow truck at i.
func (r *Registry) UpdateTowTruck(i int, t core.TowTruck) error {
	if !r.towTrucks.has(i) {
		return fmt.Errorf("tow truck %d: %w", i, ErrNotFound)
	}
	if err := r.checkRef(t.Vehicle); err != nil {
		return fmt.Errorf("tow truck %d: %w", i, err)
	}
	r.towTrucks.update(i, t)
	return nil
}

// RemoveTowTruck deletes the tow truck at i.
func (r *Registry) RemoveTowTruck(i int) error {
	if !r.towTrucks.remove(i) {
		return fmt.Errorf("tow truck %d: %w", i, ErrNotFound)
	}
	return nil
}

// TowTrucks returns a copy of the tow truck sequence.
func (r *Registry) TowTrucks() []core.TowTruck {
	return r.towTrucks.snapshot()
}

// AddAdjuster appends a and returns its position.
func (r *Registry) AddAdjuster(a core.Adjuster) (int, error) {
	if err := r.checkRef(a.Vehicle); err != nil {
		return 0, fmt.Errorf("adjuster: %w", err)
	}
	return r.adjusters.add(a), nil
}

// Adjuster returns the adjuster at i.
func (r *Registry) Adjuster(i int) (core.Adjuster, error) {
	a, ok := r.adjusters.get(i)
	if !ok {
		return core.Adjuster{}, fmt.Errorf("adjuster %d: %w", i, ErrNotFound)
	}
	return a, nil
}

// UpdateAdjuster replaces the adjuster at i.
func (r *Registry) UpdateAdjuster(i int, a core.Adjuster) error {
	if !r.adjusters.has(i) {
		return fmt.Errorf("adjuster %d: %w", i, ErrNotFound)
	}
	if err := r.checkRef(a.Vehicle); err != nil {
		return fmt.Errorf("adjuster %d: %w", i, err)
	}
	r.adjusters.update(i, a)
	return nil
}

// RemoveAdjuster deletes the adjuster at i.
func (r *Registry) RemoveAdjuster(i int) error {
	if !r.adjusters.remove(i) {
		return fmt.Errorf("adjuster %d: %w", i, ErrNotFound)
	}
	return nil
}

// Adjusters returns a copy of the adjuster sequence.
func (r *Registry) Adjusters() []core.Adjuster {
	return r.adjusters.snapshot()
}

// Snapshot copies all three sequences.
func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		Vehicles:  r.Vehicles(),
		TowTrucks: r.TowTrucks(),
		Adjusters: r.Adjusters(),
	}
}

// Clear empties the registry.
func (r *Registry) Clear() {
	r.vehicles.clear()
	r.towTrucks.clear()
	r.adjusters.clear()
}

// AssignmentLabel renders a reference the way the entity lists show it:
// "Vehículo 2 (P-123ABC)" or "No asignado".
func (r *Registry) AssignmentLabel(ref core.VehicleRef) string {
	i, ok := ref.Index()
	if !ok {
		return "No asignado"
	}
	v, found := r.vehicles.get(i)
	if !found {
		return "No asignado"
	}
	return fmt.Sprintf("Vehículo %d (%s)", i+1, v.PlateLabel())
}

func (r *Registry) checkRef(ref core.VehicleRef) error {
	if ref == core.Unassigned {
		return nil
	}
	i, ok := ref.Index()
	if !ok || !r.vehicles.has(i) {
		return fmt.Errorf("vehicle ref %d with %d vehicles: %w", int(ref), r.vehicles.len(), ErrInvalidAssignment)
	}
	return nil
}

func shiftAfterRemoval(ref core.VehicleRef, removed int) core.VehicleRef {
	i, ok := ref.Index()
	switch {
	case !ok:
		return core.Unassigned
	case i == removed:
		return core.Unassigned
	case i > removed:
		return core.AssignTo(i - 1)
	}
	return ref
}

func swapRef(ref core.VehicleRef, i, j int) core.VehicleRef {
	k, ok := ref.Index()
	switch {
	case !ok:
		return ref
	case k == i:
		return core.AssignTo(j)
	case k == j:
		return core.AssignTo(i)
	}
	return ref
}
