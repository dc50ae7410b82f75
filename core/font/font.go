/*
Package font is for font handling: parsing outline fonts, the bundled
fallback font, and the metrics needed to place a line of text.

We stick to the following definitions:

* A "scalable font" is a font file, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Go Sans regular".

* A "typecase" is a scaled font, i.e. a font in a certain size.
An example is "Go Sans regular 12pt".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

All metrics are returned in PDF points. Widths are computed from the
advance widths of the font's glyphs without kerning, which matches the way
the PDF writer positions glyphs.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The winietki Authors

*/
package font

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'winietki.fonts'
func tracer() tracing.Trace {
	return tracing.Select("winietki.fonts")
}

// ErrEmptyFont is returned when parsing a font from zero bytes.
var ErrEmptyFont = errors.New("font data is empty")

// ScalableFont is a parsed outline font together with its raw binary,
// which is needed for embedding the font into a document.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path, if loaded from a file
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// LoadOpenTypeFont reads and parses a font file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses the binary of a TrueType/OpenType font.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	if len(fbytes) == 0 {
		return nil, ErrEmptyFont
	}
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	if f.SFNT.UnitsPerEm() <= 0 {
		return nil, fmt.Errorf("font %q has invalid units per em", f.Fontname)
	}
	return
}

// PrepareCase returns a typecase for the font at a given size in points.
func (sf *ScalableFont) PrepareCase(fontsize float64) (*TypeCase, error) {
	if fontsize <= 0 || fontsize > 500.0 {
		return nil, fmt.Errorf("font size must be 0pt < size <= 500pt, is %g", fontsize)
	}
	tc := &TypeCase{scalableFontParent: sf, size: fontsize}
	upem := sf.SFNT.UnitsPerEm()
	tc.scale = fontsize / float64(upem)
	tc.ppem = fixed.I(int(upem))
	m, err := sf.SFNT.Metrics(&tc.buf, tc.ppem, xfont.HintingNone)
	if err != nil {
		return nil, err
	}
	tc.ascent = fixedToFloat(m.Ascent) * tc.scale
	tc.descent = fixedToFloat(m.Descent) * tc.scale
	return tc, nil
}

// --- Typecase --------------------------------------------------------------

// TypeCase is a font at a fixed point size. It is not safe for concurrent
// use, as it holds a glyph buffer.
type TypeCase struct {
	scalableFontParent *ScalableFont
	size               float64
	scale              float64       // points per font unit
	ppem               fixed.Int26_6 // pixels per em == units per em, i.e. unscaled
	ascent, descent    float64
	buf                sfnt.Buffer
}

// PtSize is the size of the typecase in points.
func (tc *TypeCase) PtSize() float64 {
	return tc.size
}

// Ascent is the distance from the baseline to the top of the font's
// ascenders, in points. It is positive.
func (tc *TypeCase) Ascent() float64 {
	return tc.ascent
}

// Descent is the distance from the baseline to the bottom of the font's
// descenders, in points. It is positive.
func (tc *TypeCase) Descent() float64 {
	return tc.descent
}

// Width returns the advance width of a text in points.
// Runes the font has no glyph for are measured with the font's .notdef glyph.
func (tc *TypeCase) Width(text string) float64 {
	f := tc.scalableFontParent.SFNT
	var units float64
	for _, r := range text {
		gid, err := f.GlyphIndex(&tc.buf, r)
		if err != nil {
			tracer().Debugf("no glyph index for %q: %v", r, err)
			gid = 0
		}
		adv, err := f.GlyphAdvance(&tc.buf, gid, tc.ppem, xfont.HintingNone)
		if err != nil {
			tracer().Debugf("no advance for glyph %d: %v", gid, err)
			continue
		}
		units += fixedToFloat(adv)
	}
	return units * tc.scale
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans, which covers Latin Extended-A
// (and therefore Polish diacritics).
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	gofont, err := ParseOpenTypeFont(goregular.TTF)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	gofont.Fontname = "Go Sans"
	gofont.Filepath = "internal"
	return gofont
}
