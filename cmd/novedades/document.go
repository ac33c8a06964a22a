package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/provial/novedades/internal/form"
	"github.com/provial/novedades/internal/obstruction"
	"github.com/provial/novedades/pkg/core"
)

// document is an incident form written as YAML. Keys follow the labels of
// the paper form.
type document struct {
	Date         string `yaml:"fecha"`
	Hour         string `yaml:"hora"`
	Minute       string `yaml:"minuto"`
	Site         string `yaml:"sede"`
	Jurisdiction string `yaml:"jurisdiccion"`
	Brigade      string `yaml:"brigada"`
	Unit         string `yaml:"unidad"`
	Route        string `yaml:"ruta"`
	Kilometer    string `yaml:"kilometro"`
	KilometerTo  string `yaml:"kilometro_hasta"`

	Category string `yaml:"tipo"`
	Specific string `yaml:"especifico"`

	MaterialDamage       bool   `yaml:"danos_materiales"`
	InfrastructureDamage bool   `yaml:"danos_infraestructura"`
	InfrastructureDesc   string `yaml:"descripcion_infraestructura"`
	Observations         string `yaml:"observaciones"`

	Direction   directionDoc     `yaml:"sentido"`
	Obstruction []obstructionDoc `yaml:"obstruccion"`
	Authorities []selectionDoc   `yaml:"autoridades"`
	RescueUnits []selectionDoc   `yaml:"socorro"`

	Vehicles  []core.Vehicle `yaml:"vehiculos"`
	TowTrucks []towTruckDoc  `yaml:"gruas"`
	Adjusters []adjusterDoc  `yaml:"ajustadores"`
}

type directionDoc struct {
	Primary string `yaml:"principal"`
	Both    bool   `yaml:"ambos"`
}

type obstructionDoc struct {
	Direction  string    `yaml:"sentido"`
	OffRoad    bool      `yaml:"fuera_de_via"`
	SingleLane bool      `yaml:"un_carril"`
	Lanes      []laneDoc `yaml:"carriles"`
}

type laneDoc struct {
	Lane    string `yaml:"carril"`
	Percent int    `yaml:"porcentaje"`
}

type selectionDoc struct {
	Name    string            `yaml:"nombre"`
	Details map[string]string `yaml:"datos"`
}

// towTruckDoc and adjusterDoc reference vehicles by their 1-based position
// in the vehiculos list; 0 leaves them unassigned.
type towTruckDoc struct {
	core.TowTruck `yaml:",inline"`
	Vehicle       int `yaml:"vehiculo"`
}

type adjusterDoc struct {
	core.Adjuster `yaml:",inline"`
	Vehicle       int `yaml:"vehiculo"`
}

// readDocument decodes one document, rejecting unknown keys.
func readDocument(r io.Reader) (*document, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty form document")
		}
		return nil, err
	}
	return &doc, nil
}

// loadDocument reads the document at path; "-" reads stdin.
func loadDocument(path string, stdin io.Reader) (*document, error) {
	if path == "-" {
		doc, err := readDocument(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading form from stdin: %w", err)
		}
		return doc, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening form: %w", err)
	}
	defer f.Close()

	doc, err := readDocument(f)
	if err != nil {
		return nil, fmt.Errorf("reading form %s: %w", path, err)
	}
	return doc, nil
}

// apply fills f the way an operator would: scalar fields first, then the
// direction and obstruction, the selections and finally one draft per
// entity.
func (d *document) apply(f *form.Form) error {
	if d.Date != "" {
		f.SetDate(d.Date)
	}
	if d.Hour != "" || d.Minute != "" {
		f.SetTime(d.Hour, d.Minute)
	}
	f.SetSite(d.Site)
	f.SetJurisdiction(d.Jurisdiction)
	f.SetBrigade(d.Brigade)
	f.SetUnit(d.Unit)
	f.SetRoute(d.Route)
	f.SetKilometer(d.Kilometer)
	if d.KilometerTo != "" {
		f.SetKilometerRange(true, d.KilometerTo)
	}

	if d.Category != "" {
		if err := f.SetIncidentCategory(d.Category); err != nil {
			return err
		}
		if d.Specific != "" {
			if err := f.SetIncidentType(d.Specific); err != nil {
				return err
			}
		}
	}

	f.SetMaterialDamage(d.MaterialDamage)
	f.SetInfrastructureDamage(d.InfrastructureDamage, d.InfrastructureDesc)
	f.SetObservations(d.Observations)

	if err := d.applyObstruction(f.Obstruction()); err != nil {
		return err
	}
	if err := applySelections(d.Authorities, f.SelectAuthority, f.SetAuthorityDetail); err != nil {
		return err
	}
	if err := applySelections(d.RescueUnits, f.SelectRescueUnit, f.SetRescueUnitDetail); err != nil {
		return err
	}
	return d.applyEntities(f)
}

func (d *document) applyObstruction(m *obstruction.Model) error {
	m.SetBothDirections(d.Direction.Both)
	if d.Direction.Primary != "" {
		dir, err := parseDirection(d.Direction.Primary)
		if err != nil {
			return err
		}
		if err := m.SetPrimaryDirection(dir); err != nil {
			return err
		}
	}

	for _, o := range d.Obstruction {
		dir, err := parseDirection(o.Direction)
		if err != nil {
			return err
		}
		if err := m.SetSingleLane(dir, o.SingleLane); err != nil {
			return fmt.Errorf("obstruction: %w", err)
		}
		if err := m.SetOffRoad(dir, o.OffRoad); err != nil {
			return fmt.Errorf("obstruction: %w", err)
		}
		for _, l := range o.Lanes {
			lane, ok := core.ParseLane(l.Lane)
			if !ok {
				return fmt.Errorf("obstruction lane %q: %w", l.Lane, obstruction.ErrUnknownLane)
			}
			if err := m.AddLane(dir, lane, l.Percent); err != nil {
				return fmt.Errorf("obstruction: %w", err)
			}
		}
	}
	return nil
}

func parseDirection(s string) (core.Direction, error) {
	dir, ok := core.ParseDirection(s)
	if !ok {
		return "", fmt.Errorf("direction %q: %w", s, obstruction.ErrUnknownDirection)
	}
	return dir, nil
}

func applySelections(
	items []selectionDoc,
	selectFn func(name string, on bool) error,
	detailFn func(name, label, value string) error,
) error {
	for _, it := range items {
		if err := selectFn(it.Name, true); err != nil {
			return err
		}
		for _, label := range slices.Sorted(maps.Keys(it.Details)) {
			if err := detailFn(it.Name, label, it.Details[label]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *document) applyEntities(f *form.Form) error {
	for i, v := range d.Vehicles {
		if v.PilotStatus == "" {
			v.PilotStatus = core.PilotUnharmed
		} else {
			st, ok := core.ParsePilotStatus(string(v.PilotStatus))
			if !ok {
				return fmt.Errorf("vehicle %d: unknown pilot status %q", i+1, v.PilotStatus)
			}
			v.PilotStatus = st
		}
		draft, err := f.OpenVehicle(nil)
		if err != nil {
			return err
		}
		draft.Value = v
		if err := saveDraft(draft); err != nil {
			return fmt.Errorf("vehicle %d: %w", i+1, err)
		}
	}

	for i, t := range d.TowTrucks {
		draft, err := f.OpenTowTruck(nil)
		if err != nil {
			return err
		}
		draft.Value = t.TowTruck
		draft.Value.Vehicle = core.AssignTo(t.Vehicle - 1)
		if err := saveDraft(draft); err != nil {
			return fmt.Errorf("tow truck %d: %w", i+1, err)
		}
	}

	for i, a := range d.Adjusters {
		draft, err := f.OpenAdjuster(nil)
		if err != nil {
			return err
		}
		draft.Value = a.Adjuster
		draft.Value.Vehicle = core.AssignTo(a.Vehicle - 1)
		if err := saveDraft(draft); err != nil {
			return fmt.Errorf("adjuster %d: %w", i+1, err)
		}
	}
	return nil
}

// saveDraft saves d, discarding it when the form refuses the value.
func saveDraft[T any](d *form.Draft[T]) error {
	if _, err := d.Save(); err != nil {
		d.Discard()
		return err
	}
	return nil
}
