package pdf

import (
	"bytes"
	"testing"

	"codeberg.org/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/placecards/winietki/core"
	"github.com/placecards/winietki/core/font"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTemplate creates a PDF with a number of pages of size w x h points.
func makeTemplate(t *testing.T, w, h float64, pages int) []byte {
	t.Helper()
	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetFont("Helvetica", "", 14)
	for i := 0; i < pages; i++ {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		pdf.Rect(10, 10, w-20, h-20, "D")
		pdf.Text(20, 40, "Template")
	}
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func TestLoadTemplate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.pdf")
	defer teardown()
	//
	tmpl, err := LoadTemplate(makeTemplate(t, 420, 595, 2))
	require.NoError(t, err)
	assert.Equal(t, 2, tmpl.PageCount)
	assert.InDelta(t, 420.0, tmpl.PageWidth, 0.01)
	assert.InDelta(t, 595.0, tmpl.PageHeight, 0.01)
}

func TestLoadTemplateRejects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.pdf")
	defer teardown()
	//
	_, err := LoadTemplate(nil)
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = LoadTemplate([]byte("%PDF-1.4\nthis is not really a PDF"))
	assert.Equal(t, core.EASSEMBLY, core.Code(err))
}

func TestTemplateWithObjectStreams(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.pdf")
	defer teardown()
	//
	conf := pdfcpuConfig()
	conf.WriteObjectStream = true
	conf.WriteXRefStream = true
	var compact bytes.Buffer
	require.NoError(t, api.Optimize(bytes.NewReader(makeTemplate(t, 400, 600, 1)), &compact, conf))
	require.Contains(t, compact.String(), "/ObjStm")
	//
	tmpl, err := LoadTemplate(compact.Bytes())
	require.NoError(t, err)
	assert.NotContains(t, string(tmpl.Bytes()), "/ObjStm")
	assert.InDelta(t, 400.0, tmpl.PageWidth, 0.01)
	doc := NewDocument(tmpl)
	f, err := doc.EmbedFont(font.FallbackFont())
	require.NoError(t, err)
	require.NoError(t, doc.AddTemplatePage())
	require.NoError(t, doc.DrawText(f, "Jan Kowalski", 100, 300, 20, Black))
	out, err := doc.Bytes()
	require.NoError(t, err)
	info, err := Inspect(out)
	require.NoError(t, err)
	assert.Equal(t, 1, info.PageCount)
}

func TestDocumentPages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.pdf")
	defer teardown()
	//
	tmpl, err := LoadTemplate(makeTemplate(t, 595, 842, 1))
	require.NoError(t, err)
	doc := NewDocument(tmpl)
	f, err := doc.EmbedFont(font.FallbackFont())
	require.NoError(t, err)
	for _, name := range []string{"Zażółć gęślą jaźń", "Jan Kowalski", "dr Ewa Wiśniewska"} {
		require.NoError(t, doc.AddTemplatePage())
		require.NoError(t, doc.DrawText(f, name, 200, 421, 24, Color{R: 0x33}))
	}
	assert.Equal(t, 3, doc.PageCount())
	out, err := doc.Bytes()
	require.NoError(t, err)
	again, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, out, again)
	//
	info, err := Inspect(out)
	require.NoError(t, err)
	assert.Equal(t, 3, info.PageCount)
	assert.InDelta(t, 595.0, info.PageWidth, 0.01)
	assert.InDelta(t, 842.0, info.PageHeight, 0.01)
}

func TestFontsAreBoundToDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.pdf")
	defer teardown()
	//
	tmpl, err := LoadTemplate(makeTemplate(t, 300, 200, 1))
	require.NoError(t, err)
	doc1, doc2 := NewDocument(tmpl), NewDocument(tmpl)
	f1, err := doc1.EmbedFont(font.FallbackFont())
	require.NoError(t, err)
	require.NoError(t, doc2.AddTemplatePage())
	assert.Error(t, doc2.DrawText(f1, "Jan", 10, 10, 12, Black))
	assert.Error(t, doc1.DrawText(f1, "Jan", 10, 10, 12, Black), "no page yet")
}

func TestEmbedBrokenFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.pdf")
	defer teardown()
	//
	tmpl, err := LoadTemplate(makeTemplate(t, 300, 200, 1))
	require.NoError(t, err)
	doc := NewDocument(tmpl)
	broken := &font.ScalableFont{Fontname: "Broken", Binary: bytes.Repeat([]byte{0x42}, 64)}
	_, err = doc.EmbedFont(broken)
	assert.Error(t, err)
	_, err = doc.EmbedFont(nil)
	assert.Error(t, err)
	// document remains usable
	f, err := doc.EmbedFont(font.FallbackFont())
	require.NoError(t, err)
	require.NoError(t, doc.AddTemplatePage())
	require.NoError(t, doc.DrawText(f, "Anna Nowak", 20, 100, 18, Black))
	out, err := doc.Bytes()
	require.NoError(t, err)
	info, err := Inspect(out)
	require.NoError(t, err)
	assert.Equal(t, 1, info.PageCount)
}

func TestParseHexColor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.pdf")
	defer teardown()
	//
	c, err := ParseHexColor("#1a2B3c")
	require.NoError(t, err)
	assert.Equal(t, Color{0x1a, 0x2b, 0x3c}, c)
	assert.Equal(t, "#1a2b3c", c.String())
	c, err = ParseHexColor("ff0000")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 255}, c)
	for _, s := range []string{"", "#fff", "#gg0000", "red"} {
		_, err = ParseHexColor(s)
		assert.Error(t, err, s)
	}
}
