// Package report turns deprecation records into human and machine readable
// output.
//
// # Overview
//
// A [Report] is the filtered view of one package's deprecation records,
// built from a deprecator and a [Filter]. Reports render as terminal
// tables, indented JSON, or Graphviz schedule graphs.
//
// # Usage
//
// Build a report, then pick an output:
//
//	r := report.Build(dep, report.DefaultFilter())
//	report.RenderTable(os.Stdout, r)
//	report.WriteJSON(r, os.Stdout)
//
// The default filter hides pending records; parse CLI input with
// [ParseStates] or include everything with [All]:
//
//	f, err := report.ParseStates("active,expired")
//
// # Schedule Graphs
//
// [ToDOT] produces Graphviz DOT source for a whole registry's schedule,
// one node per package fanning out to its records, shaded by state:
//
//	dot := report.ToDOT(reg.Framework(), reg.Deprecators())
//	svg, err := report.RenderSVG(dot)
//
// Rendering runs in process via [github.com/goccy/go-graphviz]; no
// Graphviz installation is required.
package report
