package place

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

var (
	preview = PreviewGeometry{WidthPx: 500, HeightPx: 700}
	a4      = TemplateGeometry{PageWidthPt: 595, PageHeightPt: 842}
)

func TestMapCorners(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.place")
	defer teardown()
	//
	for i, c := range []struct {
		a    Anchor
		want Point
	}{
		{Anchor{0, 0}, Point{0, 842}},
		{Anchor{500, 700}, Point{595, 0}},
		{Anchor{0, 700}, Point{0, 0}},
		{Anchor{500, 0}, Point{595, 842}},
		{Anchor{250, 350}, Point{297.5, 421}},
	} {
		got := Map(c.a, preview, a4)
		if math.Abs(got.X-c.want.X) > 1e-9 || math.Abs(got.Y-c.want.Y) > 1e-9 {
			t.Errorf("(%d) expected %v to map to %v, got %v", i+1, c.a, c.want, got)
		}
	}
}

func TestMapDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.place")
	defer teardown()
	//
	got := Map(Anchor{250, 350}, PreviewGeometry{}, a4)
	assert.InDelta(t, 297.5, got.X, 1e-9, "unknown preview size is taken as 500x700")
	assert.InDelta(t, 421.0, got.Y, 1e-9)
	//
	got = Map(Anchor{0, 0}, preview, TemplateGeometry{})
	assert.InDelta(t, 841.89, got.Y, 0.01, "unknown page size is taken as A4")
	got = Map(Anchor{100, 100}, PreviewGeometry{WidthPx: math.NaN(), HeightPx: -1}, a4)
	assert.InDelta(t, 119.0, got.X, 1e-9)
}

func TestMapClampsAnchor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.place")
	defer teardown()
	//
	got := Map(Anchor{-10, 800}, preview, a4)
	assert.Equal(t, Point{0, 0}, got)
	got = Map(Anchor{math.NaN(), 0}, preview, a4)
	assert.Equal(t, Point{0, 842}, got)
}

func TestToPreviewInvertsMap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.place")
	defer teardown()
	//
	a := Anchor{123.5, 456.25}
	back := ToPreview(Map(a, preview, a4), preview, a4)
	assert.InDelta(t, a.X, back.X, 1e-9)
	assert.InDelta(t, a.Y, back.Y, 1e-9)
}

func TestPreviewFontSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.place")
	defer teardown()
	//
	assert.InDelta(t, 24.0*500/595, PreviewFontSize(24, preview, a4), 1e-9)
	assert.InDelta(t, 24.0, PreviewFontSize(24, PreviewGeometry{WidthPx: 595, HeightPx: 842}, a4), 1e-9)
}

func TestAlign(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.place")
	defer teardown()
	//
	assert.Equal(t, 100.0, Align(100, 40, AlignLeft))
	assert.Equal(t, 60.0, Align(100, 40, AlignRight))
	for _, w := range []float64{0, 1, 37.5, 400} {
		x := Align(297.5, w, AlignCenter)
		assert.InDelta(t, 297.5, x+w/2, 1e-9, "centered text is symmetric around the anchor")
	}
}

func TestParseModes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.place")
	defer teardown()
	//
	for _, m := range []Alignment{AlignLeft, AlignCenter, AlignRight} {
		got, err := ParseAlignment(m.String())
		assert.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseAlignment("justify")
	assert.Error(t, err)
	v, err := ParseVerticalAnchor("top")
	assert.NoError(t, err)
	assert.Equal(t, AnchorTop, v)
	_, err = ParseVerticalAnchor("middle")
	assert.Error(t, err)
}

type fixedMetrics struct{ perRune, ascent float64 }

func (m fixedMetrics) Width(text string) float64 {
	return m.perRune * float64(len([]rune(text)))
}

func (m fixedMetrics) Ascent() float64 { return m.ascent }

func TestPlacement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.place")
	defer teardown()
	//
	m := fixedMetrics{perRune: 10, ascent: 18}
	anchor := Point{300, 400}
	p := Placement(m, "Żółć", anchor, AlignCenter, AnchorBaseline)
	assert.Equal(t, Point{280, 400}, p)
	p = Placement(m, "Żółć", anchor, AlignLeft, AnchorTop)
	assert.Equal(t, Point{300, 382}, p)
	p = Placement(m, "", anchor, AlignRight, AnchorBaseline)
	assert.Equal(t, anchor, p)
}
