// pkg/core/vehicle.go
package core

import "time"

// Vehicle is one vehicle involved in the incident.
// It has no identity of its own: it is addressed by its position in the registry.
type Vehicle struct {
	Type          string      `json:"type" yaml:"tipo"`
	Color         string      `json:"color" yaml:"color"`
	Brand         string      `json:"brand" yaml:"marca"`
	Plate         string      `json:"plate" yaml:"placa"`
	ForeignPlate  bool        `json:"foreignPlate" yaml:"extranjera"`
	PilotStatus   PilotStatus `json:"pilotStatus" yaml:"estado_piloto"`
	AssistedCount int         `json:"assistedCount" yaml:"asistidas"`

	// Circulation card and owner data
	RegistrationCard string `json:"registrationCard" yaml:"tarjeta"`
	NIT              string `json:"nit" yaml:"nit"`
	OwnerAddress     string `json:"ownerAddress" yaml:"direccion"`
	OwnerName        string `json:"ownerName" yaml:"propietario"`
	ModelYear        string `json:"modelYear" yaml:"modelo"`

	// Driver and license
	PilotName      string `json:"pilotName" yaml:"nombre_piloto"`
	LicenseType    string `json:"licenseType" yaml:"tipo_licencia"`
	LicenseNumber  string `json:"licenseNumber" yaml:"numero_licencia"`
	LicenseExpiry  string `json:"licenseExpiry" yaml:"vencimiento"`
	LicenseYears   string `json:"licenseYears" yaml:"antiguedad"`
	PilotBirthDate string `json:"pilotBirthDate" yaml:"nacimiento_piloto"`
	Ethnicity      string `json:"ethnicity" yaml:"etnia"`

	// Optional blocks; a nil pointer means the governing flag is off.
	Cargo         *Cargo         `json:"cargo,omitempty" yaml:"carga,omitempty"`
	Container     *Container     `json:"container,omitempty" yaml:"contenedor,omitempty"`
	DoubleTrailer *DoubleTrailer `json:"doubleTrailer,omitempty" yaml:"doble_remolque,omitempty"`
	Bus           *InterurbanBus `json:"bus,omitempty" yaml:"bus_extraurbano,omitempty"`
	Sanction      *Sanction      `json:"sanction,omitempty" yaml:"sancion,omitempty"`
}

// Cargo describes what a loaded vehicle carried.
type Cargo struct {
	Description string `json:"description" yaml:"descripcion"`
}

// Container holds the container or trailer registration.
type Container struct {
	RegistrationCard string `json:"registrationCard" yaml:"tc"`
	Plate            string `json:"plate" yaml:"placa"`
	Owner            string `json:"owner" yaml:"propietario"`
	Address          string `json:"address" yaml:"direccion"`
	Company          string `json:"company" yaml:"empresa"`
	Model            string `json:"model" yaml:"modelo"`
}

// DoubleTrailer holds the extra data of a double-trailer combination.
type DoubleTrailer struct {
	Axles   string `json:"axles" yaml:"ejes"`
	Sticker string `json:"sticker" yaml:"calcomania"`
	Length  string `json:"length" yaml:"longitud"`
}

// InterurbanBus holds the operating permits of an interurban bus.
type InterurbanBus struct {
	OperatingLicense       string `json:"operatingLicense" yaml:"licencia_operaciones"`
	OperatingLicenseExpiry string `json:"operatingLicenseExpiry" yaml:"vencimiento_licencia"`
	OperationsCard         string `json:"operationsCard" yaml:"tarjeta_operaciones"`
	OperationsCardExpiry   string `json:"operationsCardExpiry" yaml:"vencimiento_tarjeta"`
	Insurer                string `json:"insurer" yaml:"seguro"`
	PolicyNumber           string `json:"policyNumber" yaml:"poliza"`
	PolicyExpiry           string `json:"policyExpiry" yaml:"vencimiento_seguro"`
	AuthorizedRoute        string `json:"authorizedRoute" yaml:"ruta_autorizada"`
}

// Sanction is the ticket imposed on the driver.
type Sanction struct {
	Article   string `json:"article" yaml:"articulo"`
	Reason    string `json:"reason" yaml:"motivo"`
	ImposedBy string `json:"imposedBy" yaml:"impuesta_por"`
	Ticket    string `json:"ticket" yaml:"boleta"`
}

// PlateLabel returns the plate as shown in lists and messages.
func (v Vehicle) PlateLabel() string {
	if v.ForeignPlate {
		return v.Plate + " (Extranjera)"
	}
	return v.Plate
}

// Clone returns a deep copy, so optional blocks are never shared.
func (v Vehicle) Clone() Vehicle {
	c := v
	if v.Cargo != nil {
		cargo := *v.Cargo
		c.Cargo = &cargo
	}
	if v.Container != nil {
		cont := *v.Container
		c.Container = &cont
	}
	if v.DoubleTrailer != nil {
		dt := *v.DoubleTrailer
		c.DoubleTrailer = &dt
	}
	if v.Bus != nil {
		bus := *v.Bus
		c.Bus = &bus
	}
	if v.Sanction != nil {
		s := *v.Sanction
		c.Sanction = &s
	}
	return c
}

// PilotAge returns the driver's age in whole years at now.
// ok is false when the birth date is empty or malformed.
func (v Vehicle) PilotAge(now time.Time) (age int, ok bool) {
	if v.PilotBirthDate == "" {
		return 0, false
	}
	birth, err := time.Parse(DateLayout, v.PilotBirthDate)
	if err != nil {
		return 0, false
	}
	age = now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, true
}
