package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provial/novedades/internal/registry"
	"github.com/provial/novedades/pkg/core"
)

var now = time.Date(2026, time.October, 17, 14, 30, 0, 0, time.UTC)

func sampleForm() FormSnapshot {
	return FormSnapshot{
		Date:             "17/10/2026",
		Time:             "14:30",
		Unit:             "1105",
		Site:             "central",
		Kilometer:        "52",
		Route:            "CA-9",
		Direction:        "Norte",
		Jurisdiction:     "escuintla",
		Brigade:          "brigadista perez",
		Obstruction:      "El carril derecho obstruido en un 50% con sentido hacia el norte",
		IncidentCategory: "Hecho de tránsito",
		IncidentType:     "colisión",
		Authorities:      []string{"PNC", "PMT"},
		AuthorityDetails: []Detail{
			{Name: "PNC", Fields: []Field{
				{Label: "Hora de llegada", Value: "14:45"},
				{Label: "NIP/Chapa", Value: ""},
				{Label: "Número de unidad", Value: "pnc-22"},
			}},
		},
		MaterialDamage: true,
	}
}

func sampleEntities(t *testing.T) registry.Snapshot {
	t.Helper()
	r := registry.New()
	r.AddVehicle(core.Vehicle{Type: "pick-up", Color: "rojo", Brand: "toyota", Plate: "P123ABC", PilotStatus: core.PilotInjured})
	_, err := r.AddTowTruck(core.TowTruck{Type: "plataforma", Plate: "C456", Company: "grúas sur", Pilot: "juan", Vehicle: core.AssignTo(0)})
	require.NoError(t, err)
	return r.Snapshot()
}

func TestDetailed(t *testing.T) {
	got := Detailed(Build(sampleForm(), sampleEntities(t), now))

	want := `*Dirección General de Protección y Seguridad Vial -PROVIAL*

*Fecha* 17/10/2026
*Unidad* 1105
*Sede Central*

*Ubicación* Km 52 Ruta CA-9
*Dirección* Norte

*Brigada que reporta:* Brigadista perez
*Jurisdicción* Escuintla
*Hecho de tránsito:* Colisión
*Obstruye* El carril derecho obstruido en un 50% con sentido hacia el norte

*Cantidad de vehículos 1*

*Vehículo 1*
*Tipo* Pick-up
*Color* Rojo
*Marca* Toyota
*Placas* P123ABC
*Piloto* Herido

*Grúa del Vehículo 1*
*Tipo:* Plataforma - *Placa:* C456
*Empresa:* Grúas sur - *Piloto:* Juan

*Heridos* 1
*Trasladados* 0
*Fallecidos* 0

*Autoridades presentes* PNC, PMT
*Unidades de socorro* Ninguna

*Daños materiales:* Sí
*Daños a la infraestructura:* No

*Observaciones:* Sin observaciones`

	assert.Equal(t, want, got)
}

func TestGeneral(t *testing.T) {
	got := General(Build(sampleForm(), sampleEntities(t), now))

	want := `14:30 Se Reporta Novedad En El Km 52 Ruta CA-9

Hecho de tránsito: Colisión
Brigada que reporta: Brigadista perez
Jurisdicción: Escuintla
Carril obstruido: El carril derecho obstruido en un 50% con sentido hacia el norte
Heridos: 1
Trasladados: 0
Fallecidos: 0
Autoridades presentes: PNC, PMT
Unidades de socorro: Ninguna
Daños Materiales: Sí
Daños a la infraestructura: No

--- Datos PNC ---
Hora de llegada: 14:45
Número de unidad: Pnc-22

******Vehículo 1******
Tipo de vehículo: Pick-up
Marca: Toyota
Color: Rojo
Placas: P123ABC
Piloto: Herido

--- Datos de Piloto/Vehículo ---
TC: N/A
Nit: N/A
Dirección: N/A
Propietario: N/A
Modelo: N/A

Piloto: N/A
Lic tipo: N/A
Numero: N/A
Antigüedad: N/A
Vigencia: N/A
Etnia: N/A
Edad: N/A
Personas Asistidas: 0

--- Grúa del Vehículo 1 ---
Tipo: Plataforma - Placa: C456
Empresa: Grúas sur - Piloto: Juan`

	assert.Equal(t, want, got)
}

func TestIncidentLineWithoutSpecificType(t *testing.T) {
	f := sampleForm()
	f.IncidentType = ""
	s := Build(f, registry.Snapshot{}, now)

	assert.Contains(t, Detailed(s), "\n*Jurisdicción* Escuintla\nHecho de tránsito\n*Obstruye*")
	assert.Contains(t, General(s), "\n\nHecho de tránsito\nBrigada que reporta:")
}

func TestEmptyScalarsRenderAsNA(t *testing.T) {
	s := Build(FormSnapshot{IncidentCategory: "Asistencia vial"}, registry.Snapshot{}, now)

	detailed := Detailed(s)
	assert.Contains(t, detailed, "*Fecha* N/A\n*Unidad* N/A\n*Sede N/A*")
	assert.Contains(t, detailed, "*Dirección* No especificada")
	assert.Contains(t, detailed, "*Autoridades presentes* Ninguna\n*Unidades de socorro* Ninguna")
	assert.NotContains(t, detailed, "Cantidad de vehículos")

	general := General(s)
	assert.Contains(t, detailed, "*Ubicación* N/A\n")
	assert.True(t, strings.HasPrefix(general, "HH:MM Se Reporta Novedad En El N/A\n"), general)
	assert.Contains(t, general, "Brigada que reporta: N/A\nJurisdicción: N/A\nCarril obstruido: N/A")
}

func TestLocation(t *testing.T) {
	tests := []struct {
		km, route string
		want      string
	}{
		{"52", "CA-9", "Km 52 Ruta CA-9"},
		{"del 52 al 53", "CA-9", "Km del 52 al 53 Ruta CA-9"},
		{"", "CA-9", "Km N/A Ruta CA-9"},
		{"52", "", "Km 52 Ruta N/A"},
		{"", "", "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s := Build(FormSnapshot{Kilometer: tt.km, Route: tt.route}, registry.Snapshot{}, now)
			assert.Equal(t, tt.want, s.Location)
		})
	}
}

func TestCounts(t *testing.T) {
	r := registry.New()
	for _, st := range []core.PilotStatus{core.PilotInjured, core.PilotDeceased, core.PilotUnharmed} {
		r.AddVehicle(core.Vehicle{PilotStatus: st})
	}

	s := Build(FormSnapshot{}, r.Snapshot(), now)
	assert.Equal(t, 1, s.Injured)
	assert.Equal(t, 0, s.Transferred)
	assert.Equal(t, 1, s.Deceased)
	assert.Contains(t, General(s), "Heridos: 1\nTrasladados: 0\nFallecidos: 1")
}

func TestConditionalBlocksOrder(t *testing.T) {
	r := registry.New()
	r.AddVehicle(core.Vehicle{
		Type:          "Rastra",
		Plate:         "C-001BBB",
		PilotStatus:   core.PilotUnharmed,
		Cargo:         &core.Cargo{Description: "azúcar"},
		Container:     &core.Container{RegistrationCard: "tc-9", Plate: "TC-77", Company: "transportes"},
		DoubleTrailer: &core.DoubleTrailer{Axles: "9", Sticker: "a-1", Length: "23m"},
		Bus:           &core.InterurbanBus{OperatingLicense: "lo-1", OperatingLicenseExpiry: "01/01/2027", Insurer: "seguros gt"},
		Sanction:      &core.Sanction{Article: "145", Reason: "exceso de velocidad", ImposedBy: "PROVIAL", Ticket: "b-88"},
	})
	s := Build(sampleForm(), r.Snapshot(), now)

	tests := []struct {
		name    string
		text    string
		markers []string
	}{
		{
			name:    "detailed",
			text:    Detailed(s),
			markers: []string{"*Cargado con:* Azúcar", "*Detalles de Contenedor*", "*Datos de Bus Extraurbano*", "*Sánción Impuesta*"},
		},
		{
			name:    "general",
			text:    General(s),
			markers: []string{"Cargado con: Azúcar", "--- Detalles de Contenedor ---", "--- Datos de Bus Extraurbano ---", "--- Sánción Impuesta ---"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := -1
			for _, m := range tt.markers {
				i := strings.Index(tt.text, m)
				require.GreaterOrEqual(t, i, 0, "missing %q", m)
				assert.Greater(t, i, last, "%q out of order", m)
				last = i
			}
		})
	}

	general := General(s)
	assert.Contains(t, general, "Modelo: N/A\nEjes: 9\nCalcomanía: A-1\nLongitud: 23m")
	assert.Contains(t, general, "Lic. Operaciones: Lo-1 (Vence: 01/01/2027)\nTarj. Operaciones: N/A (Vence: N/A)\nSeguro: Seguros gt")
	assert.Contains(t, general, "No. Artículo: 145\nMotivo: Exceso de velocidad\nQuien la impuso: PROVIAL\nNo. de Boleta: B-88")
}

func TestDoubleTrailerWithoutContainer(t *testing.T) {
	r := registry.New()
	r.AddVehicle(core.Vehicle{DoubleTrailer: &core.DoubleTrailer{Axles: "6"}})

	general := General(Build(FormSnapshot{}, r.Snapshot(), now))
	assert.Contains(t, general, "--- Detalles de Contenedor ---\nTC: N/A\nPlaca: N/A")
	assert.Contains(t, general, "Ejes: 6\nCalcomanía: N/A\nLongitud: N/A")
}

func TestUnassignedExtras(t *testing.T) {
	r := registry.New()
	r.AddVehicle(core.Vehicle{Type: "Sedan", Plate: "P-1"})
	_, err := r.AddAdjuster(core.Adjuster{Name: "ana lópez", Company: "seguros el roble", Vehicle: core.Unassigned})
	require.NoError(t, err)
	_, err = r.AddTowTruck(core.TowTruck{Type: "plataforma", Plate: "C456", Company: "grúas sur", Pilot: "juan", Vehicle: core.AssignTo(0)})
	require.NoError(t, err)

	require.NoError(t, r.RemoveVehicle(0))

	general := General(Build(sampleForm(), r.Snapshot(), now))
	assert.NotContains(t, general, "Grúa del Vehículo")
	assert.True(t, strings.HasSuffix(general, `--- Datos Extras (Sin Asignar) ---
Grúa: Plataforma placas C456 de empresa Grúas sur
Ajustador: Ana lópez de empresa Seguros el roble`), general)
}

func TestAssignedAssistance(t *testing.T) {
	r := registry.New()
	r.AddVehicle(core.Vehicle{Plate: "P-1"})
	r.AddVehicle(core.Vehicle{Plate: "P-2"})
	_, err := r.AddTowTruck(core.TowTruck{Type: "Pluma", Plate: "C1", Company: "Sur", Pilot: "Juan", Transferred: true, TransferTo: "predio municipal", Vehicle: core.AssignTo(1)})
	require.NoError(t, err)
	_, err = r.AddAdjuster(core.Adjuster{Name: "Ana", Company: "Roble", VehicleType: "Moto", Brand: "Honda", Plate: "M-9", Vehicle: core.AssignTo(0)})
	require.NoError(t, err)

	general := General(Build(FormSnapshot{}, r.Snapshot(), now))
	assert.Contains(t, general, "--- Grúa del Vehículo 2 ---\nTipo: Pluma - Placa: C1\nEmpresa: Sur - Piloto: Juan\nTrasladado a: Predio municipal")
	assert.Contains(t, general, "--- Ajustador del Vehículo 1 ---\nNombre: Ana - Empresa: Roble\nVehículo: Moto Honda placas M-9")
	assert.NotContains(t, general, "Datos Extras")
}

func TestBuild(t *testing.T) {
	r := registry.New()
	r.AddVehicle(core.Vehicle{
		Plate:          "p-1",
		ForeignPlate:   true,
		PilotBirthDate: "18/10/1990",
		Container:      &core.Container{Owner: "maría"},
	})
	entities := r.Snapshot()

	f := sampleForm()
	f.InfrastructureDesc = "baranda"
	s := Build(f, entities, now)

	require.Len(t, s.Vehicles, 1)
	v := s.Vehicles[0]
	assert.Equal(t, "35", v.Age)
	assert.Equal(t, "P-1 (Extranjera)", v.PlateLabel())
	assert.Equal(t, "María", v.Container.Owner)
	assert.Equal(t, "maría", entities.Vehicles[0].Container.Owner, "input snapshot must not be modified")

	// the description only survives with its flag
	assert.Empty(t, s.InfrastructureDesc)
	f.InfrastructureDamage = true
	s = Build(f, entities, now)
	assert.Equal(t, "Baranda", s.InfrastructureDesc)
	assert.Contains(t, Detailed(s), "*Daños a la infraestructura:* Sí, Baranda")
}

func TestRender(t *testing.T) {
	s := Build(sampleForm(), registry.Snapshot{}, now)

	got, err := Render(core.VariantDetailed, s)
	require.NoError(t, err)
	assert.Equal(t, Detailed(s), got)

	got, err = Render(core.VariantGeneral, s)
	require.NoError(t, err)
	assert.Equal(t, General(s), got)

	_, err = Render(core.Variant("sms"), s)
	assert.Error(t, err)
}
