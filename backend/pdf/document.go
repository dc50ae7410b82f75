package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
	"github.com/placecards/winietki/core/font"
)

// Color is an RGB text color.
type Color struct {
	R, G, B uint8
}

// Black is the default text color.
var Black = Color{}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHexColor reads a color in the form "#rrggbb" (the leading '#' is
// optional).
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Black, fmt.Errorf("color %q is not of the form #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Black, fmt.Errorf("color %q is not of the form #rrggbb", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Font is a font embedded into a Document. It is valid for this document
// only.
type Font struct {
	family string
	owner  *Document
	Source *font.ScalableFont
}

// Document is a PDF document under construction. Every page of a document
// shows the first page of the document's template.
type Document struct {
	tmpl     *Template
	pdf      *fpdf.Fpdf
	importer *gofpdi.Importer
	tpl      int // imported template page, or -1
	fonts    int // number of fonts embedded or attempted
	out      []byte
}

// NewDocument creates an empty document for a template.
func NewDocument(t *Template) *Document {
	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCreator("winietki", true)
	return &Document{
		tmpl: t,
		pdf:  pdf,
		tpl:  -1,
	}
}

// guard runs an operation on the underlying PDF writer, converting both
// panics and the writer's sticky error state into an error return. The
// writer's error state is cleared afterwards, so the document stays usable
// after a recoverable failure (e.g., a font which cannot be embedded).
func (doc *Document) guard(op string, f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", op, r)
		}
		if doc.pdf.Err() {
			if err == nil {
				err = fmt.Errorf("%s: %w", op, doc.pdf.Error())
			}
			doc.pdf.ClearError()
		}
	}()
	f()
	return
}

// EmbedFont embeds a TrueType font. Fonts are subset when the document is
// serialized.
func (doc *Document) EmbedFont(sf *font.ScalableFont) (*Font, error) {
	if sf == nil || len(sf.Binary) == 0 {
		return nil, errors.New("no font to embed")
	}
	doc.fonts++
	family := fmt.Sprintf("F%d", doc.fonts)
	err := doc.guard("embed font", func() {
		doc.pdf.AddUTF8FontFromBytes(family, "", sf.Binary)
		doc.pdf.SetFont(family, "", 12) // fails for fonts the writer rejected
	})
	if err != nil {
		return nil, err
	}
	tracer().Debugf("font %q embedded as %s", sf.Fontname, family)
	return &Font{family: family, owner: doc, Source: sf}, nil
}

// AddTemplatePage appends a page of the template's size, showing the
// template's first page at full size.
func (doc *Document) AddTemplatePage() error {
	if doc.out != nil {
		return errors.New("document already serialized")
	}
	w, h := doc.tmpl.PageWidth, doc.tmpl.PageHeight
	return doc.guard("add template page", func() {
		doc.pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		if doc.tpl < 0 {
			doc.importer = gofpdi.NewImporter()
			var rs io.ReadSeeker = bytes.NewReader(doc.tmpl.Bytes())
			doc.tpl = doc.importer.ImportPageFromStream(doc.pdf, &rs, 1, "/MediaBox")
		}
		doc.importer.UseImportedTemplate(doc.pdf, doc.tpl, 0, 0, w, h)
	})
}

// DrawText draws a line of text onto the current page. (x, y) is the left
// end of the text's baseline in PDF coordinates.
func (doc *Document) DrawText(f *Font, text string, x, y, size float64, c Color) error {
	if f == nil || f.owner != doc {
		return errors.New("font is not embedded in this document")
	}
	if doc.pdf.PageCount() == 0 {
		return errors.New("document has no page to draw on")
	}
	return doc.guard("draw text", func() {
		doc.pdf.SetFont(f.family, "", size)
		doc.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
		// the writer's y axis runs from the top of the page downwards
		doc.pdf.Text(x, doc.tmpl.PageHeight-y, text)
	})
}

// PageCount returns the number of pages added so far.
func (doc *Document) PageCount() int {
	return doc.pdf.PageCount()
}

// Bytes serializes the document. After serialization no more pages may be
// added; repeated calls return the same bytes.
func (doc *Document) Bytes() ([]byte, error) {
	if doc.out != nil {
		return doc.out, nil
	}
	if doc.pdf.PageCount() == 0 {
		return nil, errors.New("document has no pages")
	}
	var buf bytes.Buffer
	err := doc.guard("serialize", func() {
		if err := doc.pdf.Output(&buf); err != nil {
			doc.pdf.SetError(err)
		}
	})
	if err != nil {
		return nil, err
	}
	doc.out = buf.Bytes()
	tracer().Debugf("document serialized: %d page(s), %d bytes", doc.pdf.PageCount(), len(doc.out))
	return doc.out, nil
}
