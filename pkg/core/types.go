// pkg/core/types.go
package core

import "strings"

// DateLayout is the day-first layout every date field of the form uses.
const DateLayout = "02/01/2006"

// PilotStatus describes what happened to a vehicle's driver.
type PilotStatus string

const (
	PilotUnharmed    PilotStatus = "Ileso"
	PilotInjured     PilotStatus = "Herido"
	PilotTransferred PilotStatus = "Trasladado"
	PilotDeceased    PilotStatus = "Fallecido"
	PilotFled        PilotStatus = "Fugado"
	PilotDetained    PilotStatus = "Consignado"
)

// PilotStatuses lists the statuses in the order the form offers them.
var PilotStatuses = []PilotStatus{
	PilotUnharmed, PilotInjured, PilotTransferred, PilotDeceased, PilotFled, PilotDetained,
}

// ParsePilotStatus matches a status label case-insensitively.
func ParsePilotStatus(s string) (PilotStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range PilotStatuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

// Direction is a travel direction of the roadway.
type Direction string

const (
	North Direction = "Norte"
	South Direction = "Sur"
	East  Direction = "Oriente"
	West  Direction = "Occidente"
)

// Directions lists the selectable directions.
var Directions = []Direction{North, South, East, West}

var opposites = map[Direction]Direction{
	North: South,
	South: North,
	East:  West,
	West:  East,
}

// Opposite returns the paired direction (Norte/Sur, Oriente/Occidente).
func (d Direction) Opposite() (Direction, bool) {
	o, ok := opposites[d]
	return o, ok
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	_, ok := opposites[d]
	return ok
}

// ParseDirection matches a direction label case-insensitively.
func ParseDirection(s string) (Direction, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Directions {
		if strings.EqualFold(string(d), s) {
			return d, true
		}
	}
	return "", false
}

// Lane identifies a lane of one direction of travel.
type Lane string

const (
	LaneLeft   Lane = "Izquierdo"
	LaneCenter Lane = "Central"
	LaneRight  Lane = "Derecho"
)

// Lanes lists the lanes in the order the form offers them.
var Lanes = []Lane{LaneLeft, LaneCenter, LaneRight}

// ParseLane matches a lane label case-insensitively.
func ParseLane(s string) (Lane, bool) {
	s = strings.TrimSpace(s)
	for _, l := range Lanes {
		if strings.EqualFold(string(l), s) {
			return l, true
		}
	}
	return "", false
}

// Variant selects one of the two message templates.
type Variant string

const (
	// VariantDetailed is the message for the duty officer.
	VariantDetailed Variant = "detailed"
	// VariantGeneral is the broadcast message.
	VariantGeneral Variant = "general"
)

// ParseVariant accepts the English names and the original Spanish ones.
func ParseVariant(s string) (Variant, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "detailed", "encargado":
		return VariantDetailed, true
	case "general":
		return VariantGeneral, true
	}
	return "", false
}
