/*
Package pdf is the PDF backend for place cards.

A Template is a validated, read-only PDF whose first page serves as the
background of every card. A Document is a single output document instance:
it imports the template page, embeds fonts and draws text. Document
instances and the fonts embedded into them are owned by exactly one run and
must not be shared.

Coordinates given to this package are PDF coordinates in points, with the
origin at the bottom-left corner of the page.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The winietki Authors

*/
package pdf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'winietki.pdf'
func tracer() tracing.Trace {
	return tracing.Select("winietki.pdf")
}
