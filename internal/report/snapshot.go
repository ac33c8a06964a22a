package report

import (
	"reflect"
	"strconv"
	"time"

	"github.com/provial/novedades/internal/registry"
	"github.com/provial/novedades/internal/util"
	"github.com/provial/novedades/pkg/core"
)

// Field is one labelled value of an authority or rescue unit detail.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Detail is the detail record of one selected authority or rescue unit.
type Detail struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// FormSnapshot is the scalar state of the form at the moment of generation.
type FormSnapshot struct {
	Date         string
	Time         string
	Unit         string
	Site         string
	Kilometer    string
	Route        string
	Direction    string
	Jurisdiction string
	Brigade      string
	Obstruction  string

	IncidentCategory string
	IncidentType     string

	Authorities      []string
	AuthorityDetails []Detail
	RescueUnits      []string
	RescueDetails    []Detail

	MaterialDamage       bool
	InfrastructureDamage bool
	InfrastructureDesc   string
	Observations         string
}

// VehicleEntry is a vehicle as printed, with the pilot's age resolved.
type VehicleEntry struct {
	core.Vehicle
	Age string `json:"age"`
}

// Snapshot is the immutable input of both templates. Build is the only
// producer; every string has its first letter capitalized.
type Snapshot struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	Unit         string `json:"unit"`
	Site         string `json:"site"`
	Location     string `json:"location"`
	Direction    string `json:"direction"`
	Jurisdiction string `json:"jurisdiction"`
	Brigade      string `json:"brigade"`
	Obstruction  string `json:"obstruction"`

	IncidentCategory string `json:"incidentCategory"`
	IncidentType     string `json:"incidentType"`

	Vehicles  []VehicleEntry  `json:"vehicles"`
	TowTrucks []core.TowTruck `json:"towTrucks"`
	Adjusters []core.Adjuster `json:"adjusters"`

	Authorities      []string `json:"authorities"`
	AuthorityDetails []Detail `json:"authorityDetails"`
	RescueUnits      []string `json:"rescueUnits"`
	RescueDetails    []Detail `json:"rescueDetails"`

	MaterialDamage       bool   `json:"materialDamage"`
	InfrastructureDamage bool   `json:"infrastructureDamage"`
	InfrastructureDesc   string `json:"infrastructureDesc"`
	Observations         string `json:"observations"`

	Injured     int `json:"injured"`
	Transferred int `json:"transferred"`
	Deceased    int `json:"deceased"`
}

// Build assembles a snapshot from the form fields and a registry snapshot.
// now resolves the pilots' ages.
func Build(f FormSnapshot, entities registry.Snapshot, now time.Time) Snapshot {
	s := Snapshot{
		Date:                 f.Date,
		Time:                 f.Time,
		Unit:                 f.Unit,
		Site:                 util.CapFirst(f.Site),
		Location:             location(f.Kilometer, f.Route),
		Direction:            f.Direction,
		Jurisdiction:         util.CapFirst(f.Jurisdiction),
		Brigade:              util.CapFirst(f.Brigade),
		Obstruction:          util.CapFirst(f.Obstruction),
		IncidentCategory:     util.CapFirst(f.IncidentCategory),
		IncidentType:         util.CapFirst(f.IncidentType),
		Authorities:          append([]string(nil), f.Authorities...),
		AuthorityDetails:     capDetails(f.AuthorityDetails),
		RescueUnits:          append([]string(nil), f.RescueUnits...),
		RescueDetails:        capDetails(f.RescueDetails),
		MaterialDamage:       f.MaterialDamage,
		InfrastructureDamage: f.InfrastructureDamage,
		Observations:         util.CapFirst(f.Observations),
	}
	if f.InfrastructureDamage {
		s.InfrastructureDesc = util.CapFirst(f.InfrastructureDesc)
	}

	s.Vehicles = make([]VehicleEntry, 0, len(entities.Vehicles))
	for _, v := range entities.Vehicles {
		e := VehicleEntry{Vehicle: v.Clone()}
		if age, ok := v.PilotAge(now); ok {
			e.Age = strconv.Itoa(age)
		}
		capStrings(&e.Vehicle)
		s.Vehicles = append(s.Vehicles, e)

		switch v.PilotStatus {
		case core.PilotInjured:
			s.Injured++
		case core.PilotTransferred:
			s.Transferred++
		case core.PilotDeceased:
			s.Deceased++
		}
	}
	s.TowTrucks = make([]core.TowTruck, len(entities.TowTrucks))
	for i, t := range entities.TowTrucks {
		capStrings(&t)
		s.TowTrucks[i] = t
	}
	s.Adjusters = make([]core.Adjuster, len(entities.Adjusters))
	for i, a := range entities.Adjusters {
		capStrings(&a)
		s.Adjusters[i] = a
	}
	return s
}

func capDetails(in []Detail) []Detail {
	out := make([]Detail, len(in))
	for i, d := range in {
		fields := make([]Field, len(d.Fields))
		for j, f := range d.Fields {
			fields[j] = Field{Label: f.Label, Value: util.CapFirst(f.Value)}
		}
		out[i] = Detail{Name: d.Name, Fields: fields}
	}
	return out
}

// capStrings capitalizes every string field reachable from ptr, following
// nested structs and non-nil pointers.
func capStrings(ptr any) {
	capValue(reflect.ValueOf(ptr))
}

func capValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.Pointer:
		if !v.IsNil() {
			capValue(v.Elem())
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			capValue(v.Field(i))
		}
	case reflect.String:
		if v.CanSet() {
			v.SetString(util.CapFirst(v.String()))
		}
	}
}

// location renders "Km <km> Ruta <route>", with N/A for a missing part and
// for the whole field when both are missing.
func location(km, route string) string {
	if km == "" && route == "" {
		return notAvailable
	}
	return "Km " + na(km) + " Ruta " + na(route)
}
