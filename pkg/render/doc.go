// Package render draws the version axes of a catalog as a Graphviz diagram.
//
// Framework versions point to the platform version they are bound to.
// With [Options.Dependencies] set, every dependency points to the platform
// versions it is compatible with, which makes the effect of a feed refresh
// on the compatibility ranges visible at a glance.
//
//	dot := render.ToDOT(catalog, render.Options{Dependencies: true})
//	svg, err := render.RenderSVG(dot)
//
// The DOT source can also be processed with external Graphviz tools.
// [RenderSVG] uses [github.com/goccy/go-graphviz] and needs no external
// binary.
package render
