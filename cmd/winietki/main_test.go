package main

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/go-pdf/fpdf"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/placecards/winietki/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectTemplate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.cli")
	defer teardown()
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "card.pdf")
	doc := fpdf.New("P", "pt", "", "")
	doc.AddPageFormat("P", fpdf.SizeType{Wd: 420, Ht: 298})
	require.NoError(t, doc.OutputFileAndClose(path))
	//
	jf := DefaultJobFile()
	assert.NoError(t, inspectPDF(path, jf))
	jf.Anchor = AnchorConfig{X: 900, Y: -5}
	assert.NoError(t, inspectPDF(path, jf), "anchors outside of the preview are clamped")
	//
	err := inspectPDF(filepath.Join(dir, "missing.pdf"), jf)
	assert.Equal(t, core.EMISSING, core.Code(err))
	broken := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(broken, []byte("not a PDF"), 0644))
	err = inspectPDF(broken, jf)
	assert.Equal(t, core.EINVALID, core.Code(err))
}
