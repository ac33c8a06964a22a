package form

import (
	"fmt"
	"slices"

	"github.com/provial/novedades/internal/catalog"
	"github.com/provial/novedades/internal/report"
)

// selection is an ordered multi-choice over a fixed option list where the
// catalog.None entry excludes every other choice. Selected entries that carry
// details get one value per catalog.DetailLabels entry.
type selection struct {
	options  []string
	selected []string
	details  map[string]map[string]string
}

func newSelection(options []string) selection {
	return selection{options: options, details: make(map[string]map[string]string)}
}

func (s *selection) set(name string, on bool) error {
	opt, ok := catalog.Contains(s.options, name)
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownOption)
	}
	if !on {
		s.drop(opt)
		return nil
	}
	if slices.Contains(s.selected, opt) {
		return nil
	}
	if opt == catalog.None {
		s.selected = nil
		clear(s.details)
	} else {
		s.drop(catalog.None)
	}
	s.selected = append(s.selected, opt)
	if catalog.HasDetail(opt) {
		s.details[opt] = make(map[string]string)
	}
	return nil
}

func (s *selection) drop(opt string) {
	s.selected = slices.DeleteFunc(s.selected, func(x string) bool { return x == opt })
	delete(s.details, opt)
}

func (s *selection) setDetail(name, label, value string) error {
	opt, ok := catalog.Contains(s.options, name)
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownOption)
	}
	d, ok := s.details[opt]
	if !ok {
		return fmt.Errorf("%s is not selected or records no detail: %w", opt, ErrUnknownOption)
	}
	l, ok := catalog.Contains(catalog.DetailLabels, label)
	if !ok {
		return fmt.Errorf("detail %q: %w", label, ErrUnknownOption)
	}
	d[l] = value
	return nil
}

func (s *selection) list() []string {
	return slices.Clone(s.selected)
}

// reportDetails returns the details in selection order, every label present.
func (s *selection) reportDetails() []report.Detail {
	var out []report.Detail
	for _, name := range s.selected {
		values, ok := s.details[name]
		if !ok {
			continue
		}
		fields := make([]report.Field, len(catalog.DetailLabels))
		for i, l := range catalog.DetailLabels {
			fields[i] = report.Field{Label: l, Value: values[l]}
		}
		out = append(out, report.Detail{Name: name, Fields: fields})
	}
	return out
}

func (s *selection) reset() {
	s.selected = nil
	clear(s.details)
}
