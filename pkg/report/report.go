package report

import (
	"strings"

	"github.com/matzehuels/sunset/pkg/deprecation"
)

// Filter selects which lifecycle states a report includes.
type Filter struct {
	Pending bool
	Active  bool
	Expired bool
}

// DefaultFilter shows active and expired records and hides pending ones,
// matching what most consumers care about: deprecations that already demand
// action.
func DefaultFilter() Filter {
	return Filter{Active: true, Expired: true}
}

// All includes every lifecycle state.
func All() Filter {
	return Filter{Pending: true, Active: true, Expired: true}
}

// ParseStates builds a filter from a comma-separated list of state names
// (e.g. "active,expired"). An empty list yields [DefaultFilter]. Unknown
// names return an INVALID_STATE error.
func ParseStates(s string) (Filter, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultFilter(), nil
	}

	var f Filter
	for _, part := range strings.Split(s, ",") {
		state, err := deprecation.ParseState(part)
		if err != nil {
			return Filter{}, err
		}
		switch state {
		case deprecation.Pending:
			f.Pending = true
		case deprecation.Active:
			f.Active = true
		case deprecation.Expired:
			f.Expired = true
		}
	}
	return f, nil
}

// Includes reports whether the filter admits the given state.
func (f Filter) Includes(s deprecation.State) bool {
	switch s {
	case deprecation.Pending:
		return f.Pending
	case deprecation.Active:
		return f.Active
	case deprecation.Expired:
		return f.Expired
	default:
		return false
	}
}

// Row is one deprecation in a report.
type Row struct {
	State   string `json:"state"`
	Message string `json:"message"`
	WarnIn  string `json:"warn_in"`
	GoneIn  string `json:"gone_in"`
	Locator string `json:"locator"`
}

// Report holds the filtered deprecations of one package.
type Report struct {
	Framework string `json:"framework,omitempty"`
	Package   string `json:"package"`
	Version   string `json:"version"`
	Rows      []Row  `json:"deprecations"`
}

// Build collects the deprecator's records admitted by the filter, in
// declaration order. Records without a resolvable locator show "-".
func Build(d *deprecation.Deprecator, f Filter) Report {
	r := Report{
		Framework: d.Framework(),
		Package:   d.Name(),
		Version:   d.Version().String(),
	}

	for _, rec := range d.Records() {
		if !f.Includes(rec.State()) {
			continue
		}
		locator := "-"
		if loc, ok := rec.Locator(); ok {
			locator = loc
		}
		r.Rows = append(r.Rows, Row{
			State:   rec.State().String(),
			Message: rec.Message(),
			WarnIn:  rec.WarnIn().String(),
			GoneIn:  rec.GoneIn().String(),
			Locator: locator,
		})
	}
	return r
}

// BuildAll builds one report per deprecator, preserving order.
func BuildAll(deps []*deprecation.Deprecator, f Filter) []Report {
	out := make([]Report, 0, len(deps))
	for _, d := range deps {
		out = append(out, Build(d, f))
	}
	return out
}
