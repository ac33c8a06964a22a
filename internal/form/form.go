// Package form is the top-level controller of the incident form. It owns the
// entity registry, the obstruction model and every scalar field, enforces the
// modal draft contract and validates before generating a message.
package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/provial/novedades/internal/catalog"
	"github.com/provial/novedades/internal/obstruction"
	"github.com/provial/novedades/internal/otel"
	"github.com/provial/novedades/internal/registry"
	"github.com/provial/novedades/internal/report"
	"github.com/provial/novedades/pkg/core"
)

var (
	ErrMissingIncidentType = errors.New("no incident type selected")
	ErrInvalidDate         = errors.New("invalid date, expected dd/mm/yyyy")
	ErrInvalidTime         = errors.New("invalid time")
	ErrDraftOpen           = errors.New("another entry is being edited")
	ErrDraftClosed         = errors.New("draft already saved or discarded")
	ErrUnknownOption       = errors.New("unknown option")
)

const (
	defaultHour   = "06"
	defaultMinute = "00"
)

// Option configures a Form.
type Option func(*Form)

// WithClock replaces time.Now, used for the default date and pilot ages.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		f.now = now
	}
}

// WithLogger sets the logger for generation events.
func WithLogger(l zerolog.Logger) Option {
	return func(f *Form) {
		f.logger = l
	}
}

// WithCounters records generation metrics.
func WithCounters(c *otel.Counters) Option {
	return func(f *Form) {
		f.counters = c
	}
}

// Form holds the whole state of one incident report.
type Form struct {
	now      func() time.Time
	logger   zerolog.Logger
	counters *otel.Counters

	entities    *registry.Registry
	obstruction *obstruction.Model
	draftOpen   bool

	date         string
	hour, minute string
	site         string
	jurisdiction string
	brigade      string
	kmFrom, kmTo string
	kmRange      bool
	unit, route  string

	category     string
	specificType string

	materialDamage bool
	infraDamage    bool
	infraDesc      string
	observations   string

	authorities selection
	rescue      selection
}

// Message is a generated report.
type Message struct {
	Variant     core.Variant
	Text        string
	Snapshot    report.Snapshot
	GeneratedAt time.Time
}

// New returns an empty form dated today.
func New(opts ...Option) *Form {
	f := &Form{
		now:         time.Now,
		logger:      zerolog.Nop(),
		entities:    registry.New(),
		obstruction: obstruction.New(),
		authorities: newSelection(catalog.Authorities),
		rescue:      newSelection(catalog.RescueUnits),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.resetFields()
	return f
}

func (f *Form) resetFields() {
	f.date = f.now().Format(core.DateLayout)
	f.hour, f.minute = defaultHour, defaultMinute
	f.site, f.jurisdiction, f.brigade = "", "", ""
	f.kmFrom, f.kmTo, f.kmRange = "", "", false
	f.unit, f.route = "", ""
	f.category, f.specificType = "", ""
	f.materialDamage = false
	f.infraDamage, f.infraDesc = false, ""
	f.observations = ""
	f.authorities.reset()
	f.rescue.reset()
}

// Clear resets every field, empties the registry and the obstruction state.
// The date goes back to today.
func (f *Form) Clear() error {
	if f.draftOpen {
		return ErrDraftOpen
	}
	f.resetFields()
	f.entities.Clear()
	f.obstruction.Reset()
	return nil
}

// SetDate stores the incident date as typed; it is validated on generation.
func (f *Form) SetDate(date string) { f.date = strings.TrimSpace(date) }

// SetTime stores hour and minute as typed; they are validated on generation.
func (f *Form) SetTime(hour, minute string) {
	f.hour, f.minute = strings.TrimSpace(hour), strings.TrimSpace(minute)
}

func (f *Form) SetSite(site string)                 { f.site = strings.TrimSpace(site) }
func (f *Form) SetJurisdiction(jurisdiction string) { f.jurisdiction = strings.TrimSpace(jurisdiction) }
func (f *Form) SetBrigade(brigade string)           { f.brigade = strings.TrimSpace(brigade) }
func (f *Form) SetUnit(unit string)                 { f.unit = strings.TrimSpace(unit) }
func (f *Form) SetRoute(route string)               { f.route = strings.TrimSpace(route) }
func (f *Form) SetObservations(text string)         { f.observations = strings.TrimSpace(text) }
func (f *Form) SetMaterialDamage(on bool)           { f.materialDamage = on }

// SetKilometer sets the single kilometer, or the start of a range.
func (f *Form) SetKilometer(km string) { f.kmFrom = strings.TrimSpace(km) }

// SetKilometerRange toggles the range and sets its end. Turning it off
// forgets the end.
func (f *Form) SetKilometerRange(on bool, to string) {
	f.kmRange = on
	if on {
		f.kmTo = strings.TrimSpace(to)
	} else {
		f.kmTo = ""
	}
}

// Kilometer renders the kilometer field: "del A al B" for a complete range,
// otherwise the start value.
func (f *Form) Kilometer() string {
	if f.kmRange && f.kmFrom != "" && f.kmTo != "" {
		return fmt.Sprintf("del %s al %s", f.kmFrom, f.kmTo)
	}
	return f.kmFrom
}

// SetInfrastructureDamage sets the flag and its description. The description
// is dropped when the flag is off.
func (f *Form) SetInfrastructureDamage(on bool, desc string) {
	f.infraDamage = on
	if on {
		f.infraDesc = strings.TrimSpace(desc)
	} else {
		f.infraDesc = ""
	}
}

// SetIncidentCategory selects the incident category. Changing it clears the
// specific type; an empty category deselects.
func (f *Form) SetIncidentCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		f.category, f.specificType = "", ""
		return nil
	}
	c, ok := catalog.Contains(catalog.Categories, category)
	if !ok {
		return fmt.Errorf("incident category %q: %w", category, ErrUnknownOption)
	}
	if c != f.category {
		f.specificType = ""
	}
	f.category = c
	return nil
}

// SetIncidentType sets the specific type of the selected category. Values
// outside the category's list are kept as typed.
func (f *Form) SetIncidentType(specific string) error {
	if f.category == "" {
		return ErrMissingIncidentType
	}
	specific = strings.TrimSpace(specific)
	if types, ok := catalog.SpecificTypes(f.category); ok {
		if known, found := catalog.Contains(types, specific); found {
			specific = known
		}
	}
	f.specificType = specific
	return nil
}

// IncidentCategory returns the selected category and specific type.
func (f *Form) IncidentCategory() (category, specific string) {
	return f.category, f.specificType
}

// SelectAuthority checks or unchecks an authority. Checking "Ninguna" clears
// the others; checking any other clears "Ninguna".
func (f *Form) SelectAuthority(name string, on bool) error {
	if err := f.authorities.set(name, on); err != nil {
		return fmt.Errorf("authority: %w", err)
	}
	return nil
}

// SetAuthorityDetail records one detail field of a selected authority.
func (f *Form) SetAuthorityDetail(name, label, value string) error {
	if err := f.authorities.setDetail(name, label, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("authority detail: %w", err)
	}
	return nil
}

// Authorities returns the selected authorities in selection order.
func (f *Form) Authorities() []string { return f.authorities.list() }

// SelectRescueUnit checks or unchecks a rescue unit, with the same exclusion
// rule as SelectAuthority.
func (f *Form) SelectRescueUnit(name string, on bool) error {
	if err := f.rescue.set(name, on); err != nil {
		return fmt.Errorf("rescue unit: %w", err)
	}
	return nil
}

// SetRescueUnitDetail records one detail field of a selected rescue unit.
func (f *Form) SetRescueUnitDetail(name, label, value string) error {
	if err := f.rescue.setDetail(name, label, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("rescue unit detail: %w", err)
	}
	return nil
}

// RescueUnits returns the selected rescue units in selection order.
func (f *Form) RescueUnits() []string { return f.rescue.list() }

// Obstruction returns the obstruction model owned by the form.
func (f *Form) Obstruction() *obstruction.Model { return f.obstruction }

// Snapshot captures the form fields and a copy of the registry.
func (f *Form) Snapshot() (report.FormSnapshot, registry.Snapshot) {
	fs := report.FormSnapshot{
		Date:                 f.date,
		Time:                 f.hour + ":" + f.minute,
		Unit:                 f.unit,
		Site:                 f.site,
		Kilometer:            f.Kilometer(),
		Route:                f.route,
		Direction:            f.obstruction.DirectionText(),
		Jurisdiction:         f.jurisdiction,
		Brigade:              f.brigade,
		Obstruction:          f.obstruction.Description(),
		IncidentCategory:     f.category,
		IncidentType:         f.specificType,
		Authorities:          f.authorities.list(),
		AuthorityDetails:     f.authorities.reportDetails(),
		RescueUnits:          f.rescue.list(),
		RescueDetails:        f.rescue.reportDetails(),
		MaterialDamage:       f.materialDamage,
		InfrastructureDamage: f.infraDamage,
		InfrastructureDesc:   f.infraDesc,
		Observations:         f.observations,
	}
	return fs, f.entities.Snapshot()
}

// Generate validates the form and renders the message of the given variant.
// Nothing is produced when validation fails.
func (f *Form) Generate(variant core.Variant) (Message, error) {
	ctx := context.Background()
	if err := f.validate(); err != nil {
		f.counters.ReportRejected(ctx, rejectReason(err))
		f.logger.Warn().Err(err).Str("variant", string(variant)).Msg("Report generation rejected")
		return Message{}, err
	}

	fs, entities := f.Snapshot()
	fs.Time = normalizeTime(f.hour, f.minute)
	now := f.now()
	snap := report.Build(fs, entities, now)
	text, err := report.Render(variant, snap)
	if err != nil {
		return Message{}, fmt.Errorf("rendering report: %w", err)
	}

	f.counters.ReportGenerated(ctx, string(variant))
	f.logger.Info().
		Str("variant", string(variant)).
		Int("vehicles", len(snap.Vehicles)).
		Msg("Report generated")
	return Message{Variant: variant, Text: text, Snapshot: snap, GeneratedAt: now}, nil
}

func (f *Form) validate() error {
	if f.draftOpen {
		return ErrDraftOpen
	}
	if _, err := time.Parse(core.DateLayout, f.date); err != nil {
		return fmt.Errorf("%q: %w", f.date, ErrInvalidDate)
	}
	if _, ok := parseClock(f.hour, 23); !ok {
		return fmt.Errorf("hour %q: %w", f.hour, ErrInvalidTime)
	}
	if _, ok := parseClock(f.minute, 59); !ok {
		return fmt.Errorf("minute %q: %w", f.minute, ErrInvalidTime)
	}
	if f.category == "" {
		return ErrMissingIncidentType
	}
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, ErrInvalidTime):
		return "invalid_time"
	case errors.Is(err, ErrMissingIncidentType):
		return "missing_incident_type"
	case errors.Is(err, ErrDraftOpen):
		return "draft_open"
	}
	return "other"
}

func parseClock(s string, limit int) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > limit {
		return 0, false
	}
	return n, true
}

func normalizeTime(hour, minute string) string {
	h, _ := parseClock(hour, 23)
	m, _ := parseClock(minute, 59)
	return fmt.Sprintf("%02d:%02d", h, m)
}
