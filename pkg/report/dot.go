package report

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sunset/pkg/deprecation"
)

// fillColors shade record nodes by lifecycle state.
var fillColors = map[deprecation.State]string{
	deprecation.Pending: "#eeeeee",
	deprecation.Active:  "#ffd75f",
	deprecation.Expired: "#d75f5f",
}

// ToDOT converts deprecation schedules to Graphviz DOT format: one node per
// package, one per record (shaded by state), edges package to record. The
// resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(framework string, deps []*deprecation.Deprecator) string {
	var buf bytes.Buffer
	buf.WriteString("digraph deprecations {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	if framework != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", "deprecation schedule: "+framework)
		buf.WriteString("  labelloc=t;\n")
	}
	buf.WriteString("\n")

	for _, d := range deps {
		pkgLabel := fmt.Sprintf("%s\n(v%s)", d.Name(), d.Version())
		fmt.Fprintf(&buf, "  %q [label=%q, fontsize=14, penwidth=2];\n", d.Name(), pkgLabel)

		for i, rec := range d.Records() {
			id := fmt.Sprintf("%s/%d", d.Name(), i)
			label := fmt.Sprintf("%s\nwarn %s, gone %s", firstLine(rec.Message()), rec.WarnIn(), rec.GoneIn())
			fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", id, label, fillColors[rec.State()])
			fmt.Fprintf(&buf, "  %q -> %q;\n", d.Name(), id)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		return s[:idx]
	}
	return s
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	svg, err := render(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the outer svg tag so the image starts at origin
// with explicit dimensions. Graphviz emits translated viewBoxes that some
// viewers crop.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
