package report

import (
	"strconv"

	"github.com/provial/novedades/internal/util"
)

// General renders the broadcast message: counts, per-authority details, and
// the full data of every vehicle and its assistance.
func General(s Snapshot) string {
	w := &writer{style: plain}

	w.WriteString(util.OrDefault(s.Time, "HH:MM") + " Se Reporta Novedad En El " + s.Location)
	w.WriteString("\n")
	w.line(incidentLine(s, false))
	w.field("Brigada que reporta", s.Brigade)
	w.field("Jurisdicción", s.Jurisdiction)
	w.field("Carril obstruido", s.Obstruction)
	w.line("Heridos: " + strconv.Itoa(s.Injured))
	w.line("Trasladados: " + strconv.Itoa(s.Transferred))
	w.line("Fallecidos: " + strconv.Itoa(s.Deceased))
	w.line("Autoridades presentes: " + listOrNone(s.Authorities))
	w.line("Unidades de socorro: " + listOrNone(s.RescueUnits))
	w.line("Daños Materiales: " + yesNo(s.MaterialDamage))
	w.line("Daños a la infraestructura: " + infrastructureText(s))

	for _, details := range [][]Detail{s.AuthorityDetails, s.RescueDetails} {
		for _, d := range details {
			w.section("Datos " + d.Name)
			for _, f := range d.Fields {
				if f.Value != "" {
					w.line(f.Label + ": " + f.Value)
				}
			}
		}
	}

	for i, v := range s.Vehicles {
		w.WriteString("\n\n******Vehículo " + strconv.Itoa(i+1) + "******")
		w.field("Tipo de vehículo", v.Type)
		w.field("Marca", v.Brand)
		w.field("Color", v.Color)
		w.field("Placas", v.PlateLabel())
		w.field("Piloto", string(v.PilotStatus))
		w.cargo(v.Vehicle)

		w.section("Datos de Piloto/Vehículo")
		w.field("TC", v.RegistrationCard)
		w.field("Nit", v.NIT)
		w.field("Dirección", v.OwnerAddress)
		w.field("Propietario", v.OwnerName)
		w.field("Modelo", v.ModelYear)
		w.WriteString("\n")
		w.field("Piloto", v.PilotName)
		w.field("Lic tipo", v.LicenseType)
		w.field("Numero", v.LicenseNumber)
		w.field("Antigüedad", withUnit(v.LicenseYears, "años"))
		w.field("Vigencia", v.LicenseExpiry)
		w.field("Etnia", v.Ethnicity)
		w.field("Edad", withUnit(v.Age, "Años"))
		w.line("Personas Asistidas: " + strconv.Itoa(v.AssistedCount))

		w.conditionalBlocks(v.Vehicle)
	}
	w.assistance(s)

	return w.text()
}

func withUnit(value, unit string) string {
	if value == "" {
		return ""
	}
	return value + " " + unit
}
