// Package viz draws radar charts.
//
// [Draw] paints a [Frame] onto any [Painter]. The package ships a braille
// [Canvas] painter for terminals; the export package adds SVG and PNG.
// Colors come from a [Palette], selected by name:
//
//	classic, cyberpunk, retro, minimal, ocean, sunset
package viz
