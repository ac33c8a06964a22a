// pkg/core/assistance.go
package core

// VehicleRef is an optional back-reference into the vehicle sequence. It
// stores the position plus one, so the zero value is Unassigned and a record
// decoded without a vehicle key stays unlinked.
type VehicleRef int

// Unassigned is the sentinel for a tow truck or adjuster not linked to a vehicle.
const Unassigned VehicleRef = 0

// AssignTo builds a reference to the vehicle at position i.
func AssignTo(i int) VehicleRef {
	if i < 0 {
		return Unassigned
	}
	return VehicleRef(i + 1)
}

// Index returns the referenced position, if any.
func (r VehicleRef) Index() (int, bool) {
	if r <= 0 {
		return 0, false
	}
	return int(r) - 1, true
}

// Assigned reports whether r points at a vehicle.
func (r VehicleRef) Assigned() bool {
	return r > 0
}

// TowTruck is a tow truck that attended the incident.
type TowTruck struct {
	Type        string     `json:"type" yaml:"tipo"`
	Color       string     `json:"color" yaml:"color"`
	Brand       string     `json:"brand" yaml:"marca"`
	Plate       string     `json:"plate" yaml:"placa"`
	Company     string     `json:"company" yaml:"empresa"`
	Pilot       string     `json:"pilot" yaml:"piloto"`
	Transferred bool       `json:"transferred" yaml:"traslado"`
	TransferTo  string     `json:"transferTo" yaml:"traslado_a"`
	Vehicle     VehicleRef `json:"vehicle" yaml:"-"`
}

// Adjuster is an insurance claims adjuster present at the scene.
type Adjuster struct {
	Name        string     `json:"name" yaml:"nombre"`
	Company     string     `json:"company" yaml:"empresa"`
	VehicleType string     `json:"vehicleType" yaml:"tipo_vehiculo"`
	Color       string     `json:"color" yaml:"color"`
	Brand       string     `json:"brand" yaml:"marca"`
	Plate       string     `json:"plate" yaml:"placa"`
	Vehicle     VehicleRef `json:"vehicle" yaml:"-"`
}
