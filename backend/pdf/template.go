package pdf

import (
	"bytes"
	"errors"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/placecards/winietki/core"
)

var pdfcpuSetup sync.Once

func pdfcpuConfig() *model.Configuration {
	pdfcpuSetup.Do(func() {
		api.DisableConfigDir()
	})
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Template is a background PDF. Only its first page is used.
type Template struct {
	data       []byte
	PageCount  int
	PageWidth  float64 // width of page 1 in points
	PageHeight float64 // height of page 1 in points
}

// Bytes returns the template data as rewritten by LoadTemplate. Clients
// must not modify it.
func (t *Template) Bytes() []byte {
	return t.data
}

// Info describes a PDF file.
type Info struct {
	PageCount  int
	PageWidth  float64 // width of page 1 in points
	PageHeight float64 // height of page 1 in points
}

// Inspect reads a PDF and reports its page count and the size of its first
// page.
func Inspect(data []byte) (Info, error) {
	info := Info{}
	if len(data) == 0 {
		return info, errors.New("PDF data is empty")
	}
	conf := pdfcpuConfig()
	n, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return info, err
	}
	info.PageCount = n
	if n < 1 {
		return info, errors.New("PDF has no pages")
	}
	dims, err := api.PageDims(bytes.NewReader(data), conf)
	if err != nil {
		return info, err
	}
	if len(dims) == 0 {
		return info, errors.New("PDF has no page dimensions")
	}
	info.PageWidth, info.PageHeight = dims[0].Width, dims[0].Height
	return info, nil
}

// flatten rewrites a PDF without object streams and cross-reference
// streams. The page importer reads classic xref tables only.
func flatten(data []byte) ([]byte, error) {
	conf := pdfcpuConfig()
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false
	var buf bytes.Buffer
	if err := api.Optimize(bytes.NewReader(data), &buf, conf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadTemplate validates template data and normalizes it for page import.
// Missing data results in an error
// with code core.EMISSING, data which is not a readable PDF with at least
// one page in an error with code core.EASSEMBLY.
func LoadTemplate(data []byte) (*Template, error) {
	if len(data) == 0 {
		return nil, core.Error(core.EMISSING, "no template loaded")
	}
	info, err := Inspect(data)
	if err != nil {
		tracer().Errorf("template rejected: %v", err)
		return nil, core.WrapError(err, core.EASSEMBLY, "template is not a readable PDF")
	}
	if info.PageWidth <= 0 || info.PageHeight <= 0 {
		return nil, core.Error(core.EASSEMBLY, "template page has no size")
	}
	flat, err := flatten(data)
	if err != nil {
		tracer().Errorf("template cannot be rewritten: %v", err)
		return nil, core.WrapError(err, core.EASSEMBLY, "template is not a readable PDF")
	}
	tracer().Infof("template: %d page(s), page 1 is %.2f x %.2f pt",
		info.PageCount, info.PageWidth, info.PageHeight)
	return &Template{
		data:       flat,
		PageCount:  info.PageCount,
		PageWidth:  info.PageWidth,
		PageHeight: info.PageHeight,
	}, nil
}
