package roster

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/viper"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Role names looked up in the catalog.
const (
	RoleBrigade = "BRIGADA"
	RoleCOP     = "COP"
)

var ErrUnknownRole = errors.New("role not in catalog")

// siteAliases maps spreadsheet site texts to a catalog site, with the id used
// when the catalog does not list it.
var siteAliases = []struct {
	name     string
	target   string
	fallback int
}{
	{"CENTRAL", "CENTRAL", 1},
	{"GUATEMALA", "CENTRAL", 1},
	{"CHIMALTENANGO", "CENTRAL", 1},
	{"ESCUINTLA", "SEDE SUR", 3},
	{"COATEPEQUE", "COATEPEQUE", 6},
	{"QUETZALTENANGO", "QUETZALTENANGO", 5},
	{"MAZATENANGO", "MAZATENANGO", 2},
	{"RIO DULCE", "RIO DULCE", 9},
	{"MORALES", "MORALES", 8},
	{"POPTUN", "POPTUN", 3},
	{"SAN CRISTOBAL", "SAN CRISTOBAL", 4},
}

type site struct {
	name string
	id   int
}

// Catalog resolves site texts and role names to database ids.
type Catalog struct {
	sites []site // lookup order for partial matches
	index map[string]int
	roles map[string]int
}

// Entry is one row of the site or role table.
type Entry struct {
	ID     int    `mapstructure:"id"`
	Nombre string `mapstructure:"nombre"`
}

type catalogFile struct {
	Sedes []Entry `mapstructure:"sedes"`
	Roles []Entry `mapstructure:"roles"`
}

// LoadCatalog reads the {"sedes":[...],"roles":[...]} export of the site and
// role tables and adds the site aliases. An empty path yields the aliases
// alone and no roles.
func LoadCatalog(path string) (*Catalog, error) {
	var file catalogFile
	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading roster catalog: %w", err)
		}
		if err := v.Unmarshal(&file); err != nil {
			return nil, fmt.Errorf("decoding roster catalog: %w", err)
		}
	}
	return NewCatalog(file.Sedes, file.Roles), nil
}

// NewCatalog builds a catalog from site and role rows.
func NewCatalog(sedes, roles []Entry) *Catalog {
	c := &Catalog{index: make(map[string]int), roles: make(map[string]int)}
	for _, s := range sedes {
		c.setSite(s.Nombre, s.ID)
	}
	for _, a := range siteAliases {
		id, ok := c.lookup(a.target)
		if !ok {
			id = a.fallback
		}
		c.setSite(a.name, id)
	}
	for _, r := range roles {
		c.roles[fold(r.Nombre)] = r.ID
	}
	return c
}

func (c *Catalog) setSite(name string, id int) {
	key := fold(name)
	if key == "" {
		return
	}
	if i, ok := c.index[key]; ok {
		c.sites[i].id = id
		return
	}
	c.index[key] = len(c.sites)
	c.sites = append(c.sites, site{name: key, id: id})
}

func (c *Catalog) lookup(name string) (int, bool) {
	i, ok := c.index[fold(name)]
	if !ok {
		return 0, false
	}
	return c.sites[i].id, true
}

// SiteID resolves a site text: exact match, then the first catalog name the
// text contains, then def.
func (c *Catalog) SiteID(text string, def int) int {
	key := fold(text)
	if key == "" {
		return def
	}
	if id, ok := c.lookup(key); ok {
		return id
	}
	for _, s := range c.sites {
		if strings.Contains(key, s.name) {
			return s.id
		}
	}
	return def
}

// RoleID returns the id of a role by name.
func (c *Catalog) RoleID(name string) (int, error) {
	id, ok := c.roles[fold(name)]
	if !ok {
		return 0, fmt.Errorf("%s: %w", name, ErrUnknownRole)
	}
	return id, nil
}

// fold upper-cases, strips accents and collapses whitespace, so "Poptún"
// and "POPTUN " compare equal.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToUpper(out)), " ")
}
