package report

import (
	"strconv"

	"github.com/provial/novedades/internal/util"
)

const detailedTitle = "*Dirección General de Protección y Seguridad Vial -PROVIAL*"

// Detailed renders the message for the duty officer. Key labels are wrapped
// in asterisks for bold markup in messaging apps.
func Detailed(s Snapshot) string {
	w := &writer{style: bold}

	w.WriteString(detailedTitle)
	w.WriteString("\n")
	w.line("*Fecha* " + na(s.Date))
	w.line("*Unidad* " + na(s.Unit))
	w.line("*Sede " + na(s.Site) + "*")
	w.WriteString("\n")
	w.line("*Ubicación* " + s.Location)
	w.line("*Dirección* " + util.OrDefault(s.Direction, "No especificada"))
	w.WriteString("\n")
	w.line("*Brigada que reporta:* " + na(s.Brigade))
	w.line("*Jurisdicción* " + na(s.Jurisdiction))
	w.line(incidentLine(s, true))
	w.line("*Obstruye* " + na(s.Obstruction))

	if len(s.Vehicles) > 0 {
		w.WriteString("\n\n*Cantidad de vehículos " + strconv.Itoa(len(s.Vehicles)) + "*")
		for i, v := range s.Vehicles {
			w.WriteString("\n\n*Vehículo " + strconv.Itoa(i+1) + "*")
			w.line("*Tipo* " + na(v.Type))
			w.line("*Color* " + na(v.Color))
			w.line("*Marca* " + na(v.Brand))
			w.line("*Placas* " + na(v.PlateLabel()))
			w.line("*Piloto* " + na(string(v.PilotStatus)))
			w.cargo(v.Vehicle)
			w.conditionalBlocks(v.Vehicle)
		}
	}
	w.assistance(s)

	w.WriteString("\n")
	w.line("*Heridos* " + strconv.Itoa(s.Injured))
	w.line("*Trasladados* " + strconv.Itoa(s.Transferred))
	w.line("*Fallecidos* " + strconv.Itoa(s.Deceased))
	w.WriteString("\n")
	w.line("*Autoridades presentes* " + listOrNone(s.Authorities))
	w.line("*Unidades de socorro* " + listOrNone(s.RescueUnits))
	w.WriteString("\n")
	w.line("*Daños materiales:* " + yesNo(s.MaterialDamage))
	w.line("*Daños a la infraestructura:* " + infrastructureText(s))
	w.WriteString("\n")
	w.line("*Observaciones:* " + util.OrDefault(s.Observations, "Sin observaciones"))

	return w.text()
}

// incidentLine renders "Categoría: Específico", or only the category when no
// specific type was chosen.
func incidentLine(s Snapshot, markup bool) string {
	if s.IncidentType == "" {
		return na(s.IncidentCategory)
	}
	if markup {
		return "*" + s.IncidentCategory + ":* " + s.IncidentType
	}
	return s.IncidentCategory + ": " + s.IncidentType
}
