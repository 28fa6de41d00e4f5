package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/initializr/pkg/metadata"
	"github.com/matzehuels/initializr/pkg/version"
)

// Options configures diagram generation.
type Options struct {
	// Dependencies adds one node per dependency with edges to every
	// compatible platform version.
	Dependencies bool
}

// ToDOT converts the version axes of c to Graphviz DOT. Default elements
// are drawn bold.
func ToDOT(c *metadata.Catalog, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	writeAxis(&buf, "platform", c.PlatformVersions, "lightblue")
	if c.HasFrameworkAxis() {
		writeAxis(&buf, "framework", c.FrameworkVersions, "lightyellow")
		buf.WriteString("\n")
		for _, e := range c.FrameworkVersions.Content() {
			if e.IsBound() {
				fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID("framework", e.ID), nodeID("platform", e.Bound))
			}
		}
	}

	if opts.Dependencies {
		buf.WriteString("\n")
		writeDependencies(&buf, c)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeAxis(buf *bytes.Buffer, axis string, s *metadata.SingleSelect, color string) {
	def := s.DefaultID()
	for _, e := range s.Content() {
		attrs := []string{
			fmt.Sprintf("label=%q", e.DisplayName()),
			fmt.Sprintf("fillcolor=%s", color),
		}
		if e.ID == def {
			attrs = append(attrs, "penwidth=3")
		}
		fmt.Fprintf(buf, "  %q [%s];\n", nodeID(axis, e.ID), strings.Join(attrs, ", "))
	}
}

func writeDependencies(buf *bytes.Buffer, c *metadata.Catalog) {
	var platforms []metadata.Element
	for _, e := range c.PlatformVersions.Content() {
		if version.SafeParse(e.ID) != nil {
			platforms = append(platforms, e)
		}
	}

	for _, d := range c.Dependencies.All() {
		id := nodeID("dependency", d.ID)
		label := d.ID
		if rng := d.Range(); rng != nil {
			label += "\n" + rng.String()
		}
		fmt.Fprintf(buf, "  %q [label=%q, style=\"rounded,dashed\"];\n", id, label)
		for _, p := range platforms {
			if _, err := d.Resolve(version.MustParse(p.ID)); err == nil {
				fmt.Fprintf(buf, "  %q -> %q [style=dotted];\n", id, nodeID("platform", p.ID))
			}
		}
	}
}

func nodeID(kind, id string) string {
	return kind + ":" + id
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales with its
// container.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
