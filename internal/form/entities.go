package form

import (
	"strconv"

	"github.com/provial/novedades/pkg/core"
)

func (f *Form) openDraft() error {
	if f.draftOpen {
		return ErrDraftOpen
	}
	f.draftOpen = true
	return nil
}

// OpenVehicle starts editing the vehicle at *index, or a new vehicle when
// index is nil.
func (f *Form) OpenVehicle(index *int) (*Draft[core.Vehicle], error) {
	d := &Draft[core.Vehicle]{index: -1, form: f}
	if index != nil {
		v, err := f.entities.Vehicle(*index)
		if err != nil {
			return nil, err
		}
		d.Value, d.index = v, *index
	} else {
		d.Value.PilotStatus = core.PilotUnharmed
	}
	if err := f.openDraft(); err != nil {
		return nil, err
	}
	d.apply = func(i int, v core.Vehicle) (int, error) {
		if i < 0 {
			return f.entities.AddVehicle(v), nil
		}
		return i, f.entities.UpdateVehicle(i, v)
	}
	return d, nil
}

// OpenTowTruck starts editing the tow truck at *index, or a new unassigned
// tow truck when index is nil.
func (f *Form) OpenTowTruck(index *int) (*Draft[core.TowTruck], error) {
	d := &Draft[core.TowTruck]{index: -1, form: f}
	if index != nil {
		t, err := f.entities.TowTruck(*index)
		if err != nil {
			return nil, err
		}
		d.Value, d.index = t, *index
	} else {
		d.Value.Vehicle = core.Unassigned
	}
	if err := f.openDraft(); err != nil {
		return nil, err
	}
	d.apply = func(i int, t core.TowTruck) (int, error) {
		if i < 0 {
			return f.entities.AddTowTruck(t)
		}
		return i, f.entities.UpdateTowTruck(i, t)
	}
	return d, nil
}

// OpenAdjuster starts editing the adjuster at *index, or a new unassigned
// adjuster when index is nil.
func (f *Form) OpenAdjuster(index *int) (*Draft[core.Adjuster], error) {
	d := &Draft[core.Adjuster]{index: -1, form: f}
	if index != nil {
		a, err := f.entities.Adjuster(*index)
		if err != nil {
			return nil, err
		}
		d.Value, d.index = a, *index
	} else {
		d.Value.Vehicle = core.Unassigned
	}
	if err := f.openDraft(); err != nil {
		return nil, err
	}
	d.apply = func(i int, a core.Adjuster) (int, error) {
		if i < 0 {
			return f.entities.AddAdjuster(a)
		}
		return i, f.entities.UpdateAdjuster(i, a)
	}
	return d, nil
}

// RemoveVehicle deletes a vehicle; tow trucks and adjusters assigned to it
// become unassigned.
func (f *Form) RemoveVehicle(i int) error {
	if f.draftOpen {
		return ErrDraftOpen
	}
	return f.entities.RemoveVehicle(i)
}

// RemoveTowTruck deletes a tow truck.
func (f *Form) RemoveTowTruck(i int) error {
	if f.draftOpen {
		return ErrDraftOpen
	}
	return f.entities.RemoveTowTruck(i)
}

// RemoveAdjuster deletes an adjuster.
func (f *Form) RemoveAdjuster(i int) error {
	if f.draftOpen {
		return ErrDraftOpen
	}
	return f.entities.RemoveAdjuster(i)
}

// MoveVehicleUp swaps the vehicle at i with the one before it and returns
// its new position.
func (f *Form) MoveVehicleUp(i int) (int, error) {
	return f.moveVehicle(i, i-1)
}

// MoveVehicleDown swaps the vehicle at i with the one after it and returns
// its new position.
func (f *Form) MoveVehicleDown(i int) (int, error) {
	return f.moveVehicle(i, i+1)
}

func (f *Form) moveVehicle(from, to int) (int, error) {
	if f.draftOpen {
		return from, ErrDraftOpen
	}
	if err := f.entities.SwapVehicles(from, to); err != nil {
		return from, err
	}
	return to, nil
}

// VehicleRows lists the vehicles as "#", "Tipo", "Placa", "Piloto".
func (f *Form) VehicleRows() [][]string {
	vs := f.entities.Vehicles()
	rows := make([][]string, len(vs))
	for i, v := range vs {
		rows[i] = []string{strconv.Itoa(i + 1), v.Type, v.PlateLabel(), string(v.PilotStatus)}
	}
	return rows
}

// TowTruckRows lists the tow trucks as "#", "Tipo", "Placa", "Asignado a".
func (f *Form) TowTruckRows() [][]string {
	ts := f.entities.TowTrucks()
	rows := make([][]string, len(ts))
	for i, t := range ts {
		rows[i] = []string{strconv.Itoa(i + 1), t.Type, t.Plate, f.entities.AssignmentLabel(t.Vehicle)}
	}
	return rows
}

// AdjusterRows lists the adjusters as "#", "Nombre", "Empresa", "Asignado a".
func (f *Form) AdjusterRows() [][]string {
	as := f.entities.Adjusters()
	rows := make([][]string, len(as))
	for i, a := range as {
		rows[i] = []string{strconv.Itoa(i + 1), a.Name, a.Company, f.entities.AssignmentLabel(a.Vehicle)}
	}
	return rows
}
