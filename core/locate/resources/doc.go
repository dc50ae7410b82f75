/*
Package resources resolves fonts for documents.

Two kinds of work are done here. ResolveFont embeds a font into a document
instance, falling back to the bundled default font whenever a user supplied
font cannot be used. Font lookup is a slower task, as a font may have to be
read from disk, found among the system fonts or downloaded. LocateFont
works in an async/await fashion by returning a promise, which the client
will call later to receive the loaded font. The call to the promise-function
will then block until loading has completed.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The winietki Authors

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'winietki.resources'.
func tracer() tracing.Trace {
	return tracing.Select("winietki.resources")
}
