/*
Package place maps an anchor point chosen on a preview image onto a
template page and aligns a line of text relative to it.

Preview coordinates are pixels with the origin at the top-left corner of
the rendered preview. Document coordinates are PDF points with the origin
at the bottom-left corner of the page. All functions in this package are
pure.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The winietki Authors

*/
package place

import (
	"fmt"
	"math"

	"github.com/placecards/winietki/core/dimen"
)

// Nominal preview size, assumed whenever the rendered preview size is
// unknown.
const (
	DefaultPreviewWidthPx  = 500.0
	DefaultPreviewHeightPx = 700.0
)

// Anchor is a position in preview pixels.
type Anchor struct {
	X, Y float64
}

// Point is a position in document points.
type Point struct {
	X, Y float64
}

// PreviewGeometry is the rendered size of the preview at generation time.
type PreviewGeometry struct {
	WidthPx, HeightPx float64
}

// TemplateGeometry is the physical size of the template page.
type TemplateGeometry struct {
	PageWidthPt, PageHeightPt float64
}

func (p PreviewGeometry) orDefault() PreviewGeometry {
	if !positive(p.WidthPx) {
		p.WidthPx = DefaultPreviewWidthPx
	}
	if !positive(p.HeightPx) {
		p.HeightPx = DefaultPreviewHeightPx
	}
	return p
}

// orDefault substitutes DIN A4 for unknown page dimensions.
func (t TemplateGeometry) orDefault() TemplateGeometry {
	if !positive(t.PageWidthPt) {
		t.PageWidthPt = dimen.DINA4.X.Points()
	}
	if !positive(t.PageHeightPt) {
		t.PageHeightPt = dimen.DINA4.Y.Points()
	}
	return t
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Map converts an anchor in preview space into document space.
//
//	x = a.X / previewWidth * pageWidth
//	y = pageHeight - a.Y / previewHeight * pageHeight
//
// Unknown (zero, negative or NaN) preview dimensions are replaced by the
// nominal preview size, unknown page dimensions by DIN A4. Anchors outside
// of the preview are clamped onto its border.
func Map(a Anchor, p PreviewGeometry, t TemplateGeometry) Point {
	p, t = p.orDefault(), t.orDefault()
	ax := clamp(a.X, 0, p.WidthPx)
	ay := clamp(a.Y, 0, p.HeightPx)
	return Point{
		X: ax / p.WidthPx * t.PageWidthPt,
		Y: t.PageHeightPt - ay/p.HeightPx*t.PageHeightPt,
	}
}

// ToPreview is the inverse of Map, for displaying a document position on
// the preview.
func ToPreview(pt Point, p PreviewGeometry, t TemplateGeometry) Anchor {
	p, t = p.orDefault(), t.orDefault()
	return Anchor{
		X: pt.X / t.PageWidthPt * p.WidthPx,
		Y: (t.PageHeightPt - pt.Y) / t.PageHeightPt * p.HeightPx,
	}
}

// PreviewFontSize is the font size in preview pixels which makes text on
// the preview appear in the same proportion to the page as sizePt will
// on the document.
func PreviewFontSize(sizePt float64, p PreviewGeometry, t TemplateGeometry) float64 {
	p, t = p.orDefault(), t.orDefault()
	return sizePt * p.WidthPx / t.PageWidthPt
}

// --- Alignment -------------------------------------------------------------

// Alignment is the horizontal alignment of text relative to the anchor.
type Alignment int

const (
	AlignCenter Alignment = iota // text centered on the anchor
	AlignLeft                    // text starts at the anchor
	AlignRight                   // text ends at the anchor
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

// ParseAlignment reads an alignment from its name.
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "left":
		return AlignLeft, nil
	case "center", "centre", "":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignCenter, fmt.Errorf("unknown alignment %q", s)
}

// Align returns the x-coordinate at which to start drawing text of a
// given width.
func Align(anchorX, width float64, mode Alignment) float64 {
	switch mode {
	case AlignLeft:
		return anchorX
	case AlignRight:
		return anchorX - width
	}
	return anchorX - width/2
}

// VerticalAnchor tells which part of the text line sits on the anchor.
type VerticalAnchor int

const (
	// AnchorBaseline puts the baseline of the text at the anchor.
	AnchorBaseline VerticalAnchor = iota
	// AnchorTop puts the top of the font's ascenders at the anchor, like
	// text hanging from a position on a preview.
	AnchorTop
)

func (v VerticalAnchor) String() string {
	if v == AnchorTop {
		return "top"
	}
	return "baseline"
}

// ParseVerticalAnchor reads a vertical anchor from its name.
func ParseVerticalAnchor(s string) (VerticalAnchor, error) {
	switch s {
	case "baseline", "":
		return AnchorBaseline, nil
	case "top":
		return AnchorTop, nil
	}
	return AnchorBaseline, fmt.Errorf("unknown vertical anchor %q", s)
}

// Metrics measures text in a font at a fixed size, in points.
type Metrics interface {
	Width(text string) float64
	Ascent() float64
}

// Placement returns the draw origin (the left end of the baseline) for
// text placed at a document-space anchor. The width of the text only
// affects x; y depends on the vertical anchor and the font's ascent.
func Placement(m Metrics, text string, anchor Point, align Alignment, valign VerticalAnchor) Point {
	origin := Point{
		X: Align(anchor.X, m.Width(text), align),
		Y: anchor.Y,
	}
	if valign == AnchorTop {
		origin.Y -= m.Ascent()
	}
	return origin
}
