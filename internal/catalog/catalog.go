// Package catalog holds the option lists the form offers for its searchable
// fields.
package catalog

import (
	"slices"
	"strings"
)

// None is the entry that excludes every other authority or rescue unit.
const None = "Ninguna"

// Incident categories.
const (
	TrafficIncident  = "Hecho de tránsito"
	RoadAssistance   = "Asistencia vial"
	RoadwayEmergency = "Emergencia vial"
)

// DetailLabels are the fields recorded for a selected authority or rescue
// unit, in display order.
var DetailLabels = []string{
	"Hora de llegada",
	"NIP/Chapa",
	"Número de unidad",
	"Nombre de comandante",
	"Cantidad de elementos",
	"Subestación",
	"Cantidad de unidades",
}

// Categories lists the incident categories in the order the form offers them.
var Categories = []string{RoadAssistance, TrafficIncident, RoadwayEmergency}

var specificTypes = map[string][]string{
	TrafficIncident: sorted(
		"Persona Fallecida", "Desprendimiento De Neumatico", "Salida De Pista",
		"Desprendimiento De Contenedor", "Explosion De Neumatico", "Caída De Carga",
		"Choque", "Colisión", "Colisión Múltiple", "Derrape", "Vehículo Incendiado",
		"Vuelco", "Desprendimiento", "Caída De Árbol", "Desprendimiento De Eje",
		"Desbalance De Carga", "Persona Atropellada",
	),
	RoadAssistance: sorted(
		"Pinchazo", "Trabajos De Carretera", "Consignación", "Ataque Armado", "Derrame",
		"Calentamiento", "Falta De Combustible", "Desperfectos Mecánicos",
		"Llamada De Atención", "Operativos", "Sanción", "Sistema Electrico",
		"Asistencia Al Usuario", "Doble Remolque", "Sinaprese", "Apoyo Atletismo",
		"Apoyo A Ciclismo", "Descarga De Batería", "Problemas De Salud", "Olvido La Llave",
		"Carga Sobredimensionada", "Desbalance De Carga", "Vehículo Abandonado",
		"Desprendimiento", "Caída De Poste", "Caída De Rama", "Operativo DGT",
		"Operativo PMT", "Apoyo A Digef", "Operativo Pnc Transito", "Sobrecarga",
		"Operativo En Conjunto", "Puesto De Atencion Al Usuario", "Incendio En Ruta",
	),
	RoadwayEmergency: sorted(
		"Acumulación De Agua", "Derrumbe", "Desbordamiento De Río",
		"Desprendimiento De Rocas", "Socavamiento", "Caída De Valla Publicitaría",
		"Hundimiento", "Caída De Puente", "Incendio Forestal", "Deslave",
		"Caída De Árbol", "Apoyo Antorcha",
	),
}

// SpecificTypes returns the specific incident types of a category.
func SpecificTypes(category string) ([]string, bool) {
	types, ok := specificTypes[category]
	return slices.Clone(types), ok
}

var (
	Sites = sorted(
		"Central", "Mazatenango", "Poptún", "San Cristóbal", "Quetzaltenango",
		"Coatepeque", "Palin Escuintla", "Morales", "Rio Dulce",
	)

	Units = sorted(
		"M001", "M002", "M003", "M004", "M005", "M006", "M007",
		"1104", "1105", "1106", "1107", "1108", "1109", "1110", "1111", "1112",
		"1113", "1114", "1115", "1116", "1117", "1118", "1119", "1120", "1121",
		"1122", "1123", "1124", "1125", "1126", "1127", "1128", "1129", "1130",
		"1131", "1132", "1133", "1134", "1135", "1137", "1138", "1139",
		"1170", "1171", "1172", "1173", "1174", "1175", "1176", "Peatonal",
		"002", "003", "004", "005", "006", "007", "008", "009", "010", "011",
		"012", "013", "014", "015", "016", "017", "018", "019", "020", "021",
		"022", "023", "024", "025", "026", "027", "028", "029", "030", "Otro",
	)

	Routes = sorted(
		"CA-1 Occidente", "CA-1 Oriente", "CA-10", "CA-13", "RD-PET-03", "CA-14",
		"CA-2 Occidente", "CA-2 Oriente", "CA-8 Oriente", "CA-9 Norte", "CA-9 Sur",
		"CA-9 Sur A", "CHM-11", "CITO-180", "CIUDAD", "FTN", "PRO-1", "RD-1", "RD-10",
		"RD-16", "RD-3", "RD-9 Norte", "RD-AV-09", "RD-CHI-01", "RD-GUA-04-06",
		"RD-PET-01", "RD-PET-11", "RD-PET-13", "RD-SCH-14", "RD-SRO-03", "RD-ZA-05",
		"RN-01", "RN-07 E", "RN-10", "RN-11", "RN-14", "RN-15", "RN-18", "RN-19",
		"RUTA VAS SUR", "RUTA VAS OCC", "RUTA VAS OR", "QUE-03", "CA-11", "RD-GUA-01",
		"RD-GUA-16", "RD-JUT-03", "RN-15-03", "RN-16", "RN-17", "RN-9S", "RD GUA-16",
		"RD-SM-01", "RD-SAC-11", "RD--PET-03", "RD-GUA-10", "RD-SAC-08", "RD-SOL03",
		"RN-05", "RD-STR-003", "RD-ESC-01", "RN-02",
	)

	VehicleTypes = sorted(
		"Motocicleta", "Jaula Cañera", "Rastra", "Bicicleta", "Jeep", "Bus escolar",
		"Maquinaria", "Bus turismo", "Tractor", "Ambulancia", "Camionetilla", "Pulman",
		"Autopatrulla PNC", "Bus extraurbano", "Bus urbano", "Camioneta agricola",
		"Cisterna", "Furgon", "Mototaxi", "Microbus", "Motobicicleta", "Plataforma",
		"Panel", "Unidad de PROVIAL", "Grúa", "Bus institucional", "Cuatrimoto",
		"Doble remolque", "Tesla", "Peaton", "Fugado", "Sedan", "Pick-up", "Camión",
		"Bus", "Cabezal", "Otro",
	)

	Brands = sorted(
		"Toyota", "Honda", "Nissan", "Jeep", "BMW", "Mitsubishi", "Suzuki", "Hyundai",
		"Mazda", "Chevrolet", "Freightliner", "International", "Volvo", "Italika", "Kia",
		"Volkswagen", "Ford", "Audi", "JAC", "Hino", "Otro",
	)

	Authorities = []string{"PMT", "PNC", "PROVIAL", "DGT", "Ejército", "MP", "COVIAL", "Caminos", "PNC DT", "PM", None}

	RescueUnits = []string{"Bomberos Voluntarios", "Bomberos Municipales", "CONRED", "Bomberos Departamentales", "Cruz Roja", None}

	LicenseTypes = []string{"Tipo A", "Tipo B", "Tipo C", "Tipo M", "Extranjera", "Otra"}

	Ethnicities = []string{"Ladina", "Maya", "Garífuna", "Xinca", "Extranjero", "Otra"}

	TowTruckTypes = []string{"Plataforma", "Pluma", "Remolque", "Otro"}
)

// lists maps the names accepted by Get to their options.
var lists = map[string][]string{
	"sedes":       Sites,
	"unidades":    Units,
	"rutas":       Routes,
	"tipos":       Categories,
	"vehiculos":   VehicleTypes,
	"marcas":      Brands,
	"autoridades": Authorities,
	"socorro":     RescueUnits,
	"licencias":   LicenseTypes,
	"etnias":      Ethnicities,
	"gruas":       TowTruckTypes,
	"transito":    specificTypes[TrafficIncident],
	"asistencia":  specificTypes[RoadAssistance],
	"emergencia":  specificTypes[RoadwayEmergency],
}

// Names returns the list names Get accepts, sorted.
func Names() []string {
	names := make([]string, 0, len(lists))
	for n := range lists {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Get returns a copy of a named list.
func Get(name string) ([]string, bool) {
	l, ok := lists[strings.ToLower(strings.TrimSpace(name))]
	return slices.Clone(l), ok
}

// Search keeps the options that contain query, ignoring case. An empty query
// keeps everything.
func Search(options []string, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return slices.Clone(options)
	}
	var out []string
	for _, o := range options {
		if strings.Contains(strings.ToLower(o), q) {
			out = append(out, o)
		}
	}
	return out
}

// Contains reports whether option is one of options, ignoring case, and
// returns it with the catalog's spelling.
func Contains(options []string, option string) (string, bool) {
	option = strings.TrimSpace(option)
	for _, o := range options {
		if strings.EqualFold(o, option) {
			return o, true
		}
	}
	return "", false
}

// HasDetail reports whether a selected authority or rescue unit records a
// detail block.
func HasDetail(name string) bool {
	return name != "PROVIAL" && name != None
}

func sorted(items ...string) []string {
	slices.Sort(items)
	return slices.Compact(items)
}
