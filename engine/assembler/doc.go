/*
Package assembler generates personalized place cards: for every record it
puts the first page of a template PDF onto a page and draws the record's
display name at an anchor point.

An Assembler collects its inputs (template, records and an optional font)
and produces output on request with Generate. Generation runs in one of two
modes:

  - merged: all cards go into one document; the font is embedded once,
  - split: every card becomes a document of its own, with its own font
    embedding, and the documents are packaged into a ZIP archive.

Records are processed strictly in order, and progress is reported after
every record. A run which fails leaves no partial output behind.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The winietki Authors

*/
package assembler

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'winietki.assembler'
func tracer() tracing.Trace {
	return tracing.Select("winietki.assembler")
}
