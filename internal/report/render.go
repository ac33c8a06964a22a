// Package report turns a form snapshot into the two text messages the duty
// officer and the broadcast channel receive.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/provial/novedades/internal/util"
	"github.com/provial/novedades/pkg/core"
)

const (
	notAvailable = "N/A"
	none         = "Ninguna"
)

// Render produces the message of the given variant.
func Render(variant core.Variant, s Snapshot) (string, error) {
	switch variant {
	case core.VariantDetailed:
		return Detailed(s), nil
	case core.VariantGeneral:
		return General(s), nil
	}
	return "", fmt.Errorf("unknown report variant %q", variant)
}

// style decides how headings and labels are marked up.
type style struct {
	heading func(title string) string
	field   func(label, value string) string
}

var plain = style{
	heading: func(title string) string { return "--- " + title + " ---" },
	field:   func(label, value string) string { return label + ": " + value },
}

var bold = style{
	heading: func(title string) string { return "*" + title + "*" },
	field:   func(label, value string) string { return "*" + label + ":* " + value },
}

type writer struct {
	strings.Builder
	style style
}

func (w *writer) line(s string) {
	w.WriteString("\n")
	w.WriteString(s)
}

func (w *writer) field(label, value string) {
	w.line(w.style.field(label, na(value)))
}

// section starts a new paragraph with a heading.
func (w *writer) section(title string) {
	w.WriteString("\n\n")
	w.WriteString(w.style.heading(title))
}

func (w *writer) text() string {
	return strings.TrimSpace(w.String())
}

func na(s string) string {
	return util.OrDefault(s, notAvailable)
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return none
	}
	return strings.Join(items, ", ")
}

func infrastructureText(s Snapshot) string {
	switch {
	case !s.InfrastructureDamage:
		return "No"
	case s.InfrastructureDesc != "":
		return "Sí, " + s.InfrastructureDesc
	}
	return "Sí"
}

func withExpiry(value, expiry string) string {
	return na(value) + " (Vence: " + na(expiry) + ")"
}

// conditionalBlocks writes the optional vehicle blocks in their fixed order:
// container/trailer, bus, sanction. Cargo belongs to the vehicle header.
func (w *writer) conditionalBlocks(v core.Vehicle) {
	if v.Container != nil || v.DoubleTrailer != nil {
		c := core.Container{}
		if v.Container != nil {
			c = *v.Container
		}
		w.section("Detalles de Contenedor")
		w.field("TC", c.RegistrationCard)
		w.field("Placa", c.Plate)
		w.field("Propietario", c.Owner)
		w.field("Dirección", c.Address)
		w.field("Empresa", c.Company)
		w.field("Modelo", c.Model)
		if d := v.DoubleTrailer; d != nil {
			w.field("Ejes", d.Axles)
			w.field("Calcomanía", d.Sticker)
			w.field("Longitud", d.Length)
		}
	}
	if b := v.Bus; b != nil {
		w.section("Datos de Bus Extraurbano")
		w.line(w.style.field("Lic. Operaciones", withExpiry(b.OperatingLicense, b.OperatingLicenseExpiry)))
		w.line(w.style.field("Tarj. Operaciones", withExpiry(b.OperationsCard, b.OperationsCardExpiry)))
		w.field("Seguro", b.Insurer)
		w.line(w.style.field("No. Póliza", withExpiry(b.PolicyNumber, b.PolicyExpiry)))
		w.field("Ruta Autorizada", b.AuthorizedRoute)
	}
	if sn := v.Sanction; sn != nil {
		w.section("Sánción Impuesta")
		w.field("No. Artículo", sn.Article)
		w.field("Motivo", sn.Reason)
		w.field("Quien la impuso", sn.ImposedBy)
		w.field("No. de Boleta", sn.Ticket)
	}
}

func (w *writer) cargo(v core.Vehicle) {
	if v.Cargo != nil && v.Cargo.Description != "" {
		w.line(w.style.field("Cargado con", v.Cargo.Description))
	}
}

// assistance writes the tow trucks and adjusters linked to a vehicle, then
// the unassigned ones, tow trucks first, in registration order.
func (w *writer) assistance(s Snapshot) {
	for _, t := range s.TowTrucks {
		i, ok := t.Vehicle.Index()
		if !ok {
			continue
		}
		w.section("Grúa del Vehículo " + strconv.Itoa(i+1))
		w.line(w.style.field("Tipo", na(t.Type)) + " - " + w.style.field("Placa", na(t.Plate)))
		w.line(w.style.field("Empresa", na(t.Company)) + " - " + w.style.field("Piloto", na(t.Pilot)))
		if t.Transferred {
			w.field("Trasladado a", t.TransferTo)
		}
	}
	for _, a := range s.Adjusters {
		i, ok := a.Vehicle.Index()
		if !ok {
			continue
		}
		w.section("Ajustador del Vehículo " + strconv.Itoa(i+1))
		w.line(w.style.field("Nombre", na(a.Name)) + " - " + w.style.field("Empresa", na(a.Company)))
		w.field("Vehículo", adjusterVehicle(a))
	}

	var extras []string
	for _, t := range s.TowTrucks {
		if !t.Vehicle.Assigned() {
			extras = append(extras, w.style.field("Grúa", fmt.Sprintf("%s placas %s de empresa %s", na(t.Type), na(t.Plate), na(t.Company))))
		}
	}
	for _, a := range s.Adjusters {
		if !a.Vehicle.Assigned() {
			extras = append(extras, w.style.field("Ajustador", fmt.Sprintf("%s de empresa %s", na(a.Name), na(a.Company))))
		}
	}
	if len(extras) > 0 {
		w.section("Datos Extras (Sin Asignar)")
		for _, e := range extras {
			w.line(e)
		}
	}
}

func adjusterVehicle(a core.Adjuster) string {
	desc := strings.TrimSpace(a.VehicleType + " " + a.Brand)
	return na(desc) + " placas " + na(a.Plate)
}
