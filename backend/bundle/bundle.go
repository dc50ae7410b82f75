/*
Package bundle packages generated documents for download: either a single
merged PDF or a ZIP archive with one PDF per card. Content is never
transformed.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The winietki Authors

*/
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/schuko/tracing"
	"github.com/placecards/winietki/core"
)

// tracer traces with key 'winietki.bundle'
func tracer() tracing.Trace {
	return tracing.Select("winietki.bundle")
}

// Media types of outputs.
const (
	MediaTypePDF = "application/pdf"
	MediaTypeZIP = "application/zip"
)

// Output is a downloadable artifact.
type Output struct {
	Filename  string
	MediaType string
	Data      []byte
}

// entryTime is the modification time of all archive entries, making
// archives of identical entries identical.
var entryTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Entry is a named file within an archive.
type Entry struct {
	Name string
	Data []byte
}

// Merged packages a single PDF as <basename>.pdf.
func Merged(basename string, data []byte) Output {
	return Output{
		Filename:  basename + ".pdf",
		MediaType: MediaTypePDF,
		Data:      data,
	}
}

// Archive packages entries into a ZIP archive named <basename>.zip.
// Entries with duplicate names overwrite each other; the last one wins,
// but keeps the position of the first one.
func Archive(basename string, entries []Entry) (Output, error) {
	unique := linkedhashmap.New()
	for _, e := range entries {
		if _, dup := unique.Get(e.Name); dup {
			tracer().Infof("duplicate archive entry %q, keeping the last one", e.Name)
		}
		unique.Put(e.Name, e.Data)
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, k := range unique.Keys() {
		name := k.(string)
		data, _ := unique.Get(name)
		hdr := &zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: entryTime,
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return Output{}, core.WrapError(err, core.EASSEMBLY, "cannot create archive entry %s", name)
		}
		if _, err = w.Write(data.([]byte)); err != nil {
			return Output{}, core.WrapError(err, core.EASSEMBLY, "cannot write archive entry %s", name)
		}
	}
	if err := zw.Close(); err != nil {
		return Output{}, core.WrapError(err, core.EASSEMBLY, "cannot finish archive")
	}
	tracer().Debugf("archive %s.zip with %d entries", basename, unique.Size())
	return Output{
		Filename:  basename + ".zip",
		MediaType: MediaTypeZIP,
		Data:      buf.Bytes(),
	}, nil
}

// WriteTo writes the output's data to w.
func (o Output) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(o.Data)
	return int64(n), err
}

// WriteFile saves the output into directory dir under its file name and
// returns the path of the file.
func (o Output) WriteFile(dir string) (string, error) {
	if o.Filename == "" || strings.ContainsAny(o.Filename, `/\`) {
		return "", fmt.Errorf("invalid output file name %q", o.Filename)
	}
	path := filepath.Join(dir, o.Filename)
	if err := os.WriteFile(path, o.Data, 0644); err != nil {
		return "", err
	}
	tracer().Infof("wrote %s (%d bytes)", path, len(o.Data))
	return path, nil
}
