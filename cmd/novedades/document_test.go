package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provial/novedades/internal/catalog"
	"github.com/provial/novedades/internal/form"
	"github.com/provial/novedades/internal/obstruction"
	"github.com/provial/novedades/internal/registry"
	"github.com/provial/novedades/pkg/core"
)

const sampleDocument = `
fecha: 16/10/2026
hora: "07"
minuto: "05"
sede: central
jurisdiccion: escuintla
brigada: 12345 Juan Perez
unidad: "1040"
ruta: CA-9
kilometro: 52
kilometro_hasta: 53
tipo: hecho de tránsito
especifico: colisión
danos_materiales: true
danos_infraestructura: true
descripcion_infraestructura: baranda dañada
observaciones: se solicita grua
sentido:
  principal: sur
  ambos: true
obstruccion:
  - sentido: Sur
    carriles:
      - carril: derecho
        porcentaje: 100
  - sentido: Norte
    fuera_de_via: true
autoridades:
  - nombre: PNC
    datos:
      Hora de llegada: "07:30"
      NIP/Chapa: "9876"
  - nombre: PMT
socorro:
  - nombre: Cruz Roja
vehiculos:
  - tipo: Pick-up
    color: Rojo
    marca: Toyota
    placa: P-123ABC
    estado_piloto: herido
  - tipo: Camión
    placa: C-456DEF
    extranjera: true
gruas:
  - tipo: Plataforma
    placa: C-1
    empresa: Grúas Sur
    vehiculo: 2
  - tipo: Pluma
    placa: C-2
ajustadores:
  - nombre: Ana Lopez
    empresa: Seguros GT
    vehiculo: 1
`

func newTestForm() *form.Form {
	now := time.Date(2026, time.October, 17, 10, 0, 0, 0, time.UTC)
	return form.New(form.WithClock(func() time.Time { return now }))
}

func TestReadDocument(t *testing.T) {
	doc, err := readDocument(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	assert.Equal(t, "16/10/2026", doc.Date)
	assert.Equal(t, "52", doc.Kilometer)
	assert.Equal(t, directionDoc{Primary: "sur", Both: true}, doc.Direction)
	require.Len(t, doc.Vehicles, 2)
	assert.Equal(t, core.PilotStatus("herido"), doc.Vehicles[0].PilotStatus)
	assert.True(t, doc.Vehicles[1].ForeignPlate)
	require.Len(t, doc.TowTrucks, 2)
	assert.Equal(t, "Grúas Sur", doc.TowTrucks[0].Company)
	assert.Equal(t, 2, doc.TowTrucks[0].Vehicle)
	assert.Equal(t, 0, doc.TowTrucks[1].Vehicle)
}

func TestReadDocument_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "unknown key", input: "fecha: 16/10/2026\nkilometraje: 52\n"},
		{name: "unknown vehicle key", input: "vehiculos:\n  - tipo: Moto\n    ruedas: 2\n"},
		{name: "not a mapping", input: "- fecha\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readDocument(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestDocumentApply(t *testing.T) {
	doc, err := readDocument(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	f := newTestForm()
	require.NoError(t, doc.apply(f))

	fs, entities := f.Snapshot()
	assert.Equal(t, "16/10/2026", fs.Date)
	assert.Equal(t, "07:05", fs.Time)
	assert.Equal(t, "del 52 al 53", fs.Kilometer)
	assert.Equal(t, catalog.TrafficIncident, fs.IncidentCategory)
	assert.Equal(t, "Colisión", fs.IncidentType)
	assert.Equal(t, []string{"PNC", "PMT"}, fs.Authorities)
	assert.Equal(t, []string{"Cruz Roja"}, fs.RescueUnits)
	assert.True(t, fs.InfrastructureDamage)
	assert.Equal(t, "baranda dañada", fs.InfrastructureDesc)

	m := f.Obstruction()
	assert.Equal(t, []core.Direction{core.South, core.North}, m.ActiveDirections())
	south, err := m.State(core.South)
	require.NoError(t, err)
	assert.Equal(t, []obstruction.LaneBlock{{Lane: core.LaneRight, Percent: 100}}, south.Lanes)
	north, err := m.State(core.North)
	require.NoError(t, err)
	assert.True(t, north.OffRoad)

	require.Len(t, entities.Vehicles, 2)
	assert.Equal(t, core.PilotInjured, entities.Vehicles[0].PilotStatus)
	assert.Equal(t, core.PilotUnharmed, entities.Vehicles[1].PilotStatus)

	assert.Equal(t, [][]string{
		{"1", "Plataforma", "C-1", "Vehículo 2 (C-456DEF (Extranjera))"},
		{"2", "Pluma", "C-2", "No asignado"},
	}, f.TowTruckRows())
	require.Len(t, entities.Adjusters, 1)
	assert.Equal(t, core.AssignTo(0), entities.Adjusters[0].Vehicle)
}

func TestDocumentApply_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "unknown category",
			input:   "tipo: incendio\n",
			wantErr: form.ErrUnknownOption,
		},
		{
			name:    "unknown direction",
			input:   "sentido:\n  principal: arriba\n",
			wantErr: obstruction.ErrUnknownDirection,
		},
		{
			name:    "inactive direction",
			input:   "sentido:\n  principal: Norte\nobstruccion:\n  - sentido: Sur\n    fuera_de_via: true\n",
			wantErr: obstruction.ErrDirectionInactive,
		},
		{
			name: "single lane capacity",
			input: `sentido:
  principal: Norte
obstruccion:
  - sentido: Norte
    un_carril: true
    carriles:
      - carril: izquierdo
        porcentaje: 50
      - carril: derecho
        porcentaje: 50
`,
			wantErr: obstruction.ErrCapacityExceeded,
		},
		{
			name:    "unknown lane",
			input:   "sentido:\n  principal: Norte\nobstruccion:\n  - sentido: Norte\n    carriles:\n      - carril: berma\n        porcentaje: 50\n",
			wantErr: obstruction.ErrUnknownLane,
		},
		{
			name:    "unknown authority",
			input:   "autoridades:\n  - nombre: FBI\n",
			wantErr: form.ErrUnknownOption,
		},
		{
			name:    "detail on authority without details",
			input:   "autoridades:\n  - nombre: PROVIAL\n    datos:\n      NIP/Chapa: \"1\"\n",
			wantErr: form.ErrUnknownOption,
		},
		{
			name:    "tow truck on missing vehicle",
			input:   "vehiculos:\n  - tipo: Moto\ngruas:\n  - tipo: Pluma\n    vehiculo: 3\n",
			wantErr: registry.ErrInvalidAssignment,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := readDocument(strings.NewReader(tt.input))
			require.NoError(t, err)

			f := newTestForm()
			err = doc.apply(f)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDocumentApply_RejectedDraftIsDiscarded(t *testing.T) {
	doc, err := readDocument(strings.NewReader("ajustadores:\n  - nombre: Ana\n    vehiculo: 1\n"))
	require.NoError(t, err)

	f := newTestForm()
	require.ErrorIs(t, doc.apply(f), registry.ErrInvalidAssignment)

	d, err := f.OpenVehicle(nil)
	require.NoError(t, err)
	d.Discard()
}

func TestDocumentApply_UnknownPilotStatus(t *testing.T) {
	doc, err := readDocument(strings.NewReader("vehiculos:\n  - tipo: Moto\n    estado_piloto: dormido\n"))
	require.NoError(t, err)

	err = doc.apply(newTestForm())
	assert.ErrorContains(t, err, `vehicle 1: unknown pilot status "dormido"`)
}
