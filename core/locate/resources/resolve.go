package resources

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko"
	"github.com/placecards/winietki/core"
	"github.com/placecards/winietki/core/font"
)

// NotFound returns an application error for a missing font.
func NotFound(res string) error {
	e := fmt.Errorf("resource missing: %v", res)
	return core.WrapError(e, core.EMISSING, "font not found: %s", res)
}

// --- Embedding -------------------------------------------------------------

// FontEmbedder is a document instance able to embed a font. F is the
// document-specific font handle, valid for this document only.
type FontEmbedder[F any] interface {
	EmbedFont(sf *font.ScalableFont) (F, error)
}

// ResolveFont embeds a font into doc and returns the font handle bound to doc.
//
// If userFont is non-empty, ResolveFont tries to parse and embed it. Any failure
// to do so is logged and the bundled fallback font is embedded instead. If
// userFont is empty, the fallback font is embedded directly. An error is
// returned only if the fallback font cannot be embedded; it carries code
// core.EASSEMBLY.
//
// Handles must not be shared between documents; clients call ResolveFont once
// per document instance, even when the font bytes are the same.
func ResolveFont[F any](doc FontEmbedder[F], userFont []byte) (F, error) {
	if len(userFont) > 0 {
		f, err := embedUserFont(doc, userFont)
		if err == nil {
			return f, nil
		}
		tracer().Errorf("%s; falling back to %s", err.Error(), font.FallbackFont().Fontname)
	}
	fallback := font.FallbackFont()
	f, err := doc.EmbedFont(fallback)
	if err != nil {
		var null F
		return null, core.WrapError(err, core.EASSEMBLY,
			"default font %s cannot be embedded", fallback.Fontname)
	}
	tracer().Debugf("embedded default font %s", fallback.Fontname)
	return f, nil
}

func embedUserFont[F any](doc FontEmbedder[F], userFont []byte) (F, error) {
	var null F
	sf, err := font.ParseOpenTypeFont(userFont)
	if err != nil {
		return null, core.WrapError(err, core.EFONT, "user font cannot be parsed: %v", err)
	}
	f, err := doc.EmbedFont(sf)
	if err != nil {
		return null, core.WrapError(err, core.EFONT,
			"user font %q cannot be embedded: %v", sf.Fontname, err)
	}
	tracer().Debugf("embedded user font %q", sf.Fontname)
	return f, nil
}

// --- Locating fonts --------------------------------------------------------

type fontPlusErr struct {
	font *font.ScalableFont
	err  error
}

// FontPromise is returned by LocateFont. Font blocks until the font is
// loaded or loading failed.
type FontPromise interface {
	Font() (*font.ScalableFont, error)
	Await(ctx context.Context) (*font.ScalableFont, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.ScalableFont, error)
}

func (loader fontLoader) Font() (*font.ScalableFont, error) {
	return loader.await(context.Background())
}

func (loader fontLoader) Await(ctx context.Context) (*font.ScalableFont, error) {
	return loader.await(ctx)
}

// LocateFont loads a font given by name. name may be
//
//   - an http or https URL: the font is downloaded once into the cache
//     directory (see CacheDirPath) and loaded from there,
//   - a path to a font file,
//   - the name of a font installed on the system, e.g. "Arial".
//
// If the font cannot be found, the promise returns an error with code
// core.EMISSING. Fonts which are found but cannot be parsed result in
// an error with code core.EFONT.
func LocateFont(conf schuko.Configuration, name string) FontPromise {
	ch := make(chan fontPlusErr, 1)
	go func(ch chan<- fontPlusErr) {
		result := fontPlusErr{}
		result.font, result.err = locate(conf, name)
		ch <- result
		close(ch)
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*font.ScalableFont, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}

func locate(conf schuko.Configuration, name string) (*font.ScalableFont, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NotFound("<empty>")
	}
	var fpath string
	if u, err := url.Parse(name); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		p, err := cachedDownload(conf, u)
		if err != nil {
			return nil, core.WrapError(err, core.EMISSING, "font cannot be downloaded: %s", name)
		}
		fpath = p
	} else if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		fpath = name
	} else {
		p, err := findfont.Find(name) // try to find as system font
		if err != nil || p == "" {
			tracer().Infof("font %s is neither a file nor a system font", name)
			return nil, NotFound(name)
		}
		tracer().Debugf("%s is a system font at %s", name, p)
		fpath = p
	}
	f, err := font.LoadOpenTypeFont(fpath)
	if err != nil {
		return nil, core.WrapError(err, core.EFONT, "font %s cannot be loaded: %v", fpath, err)
	}
	return f, nil
}

func cachedDownload(conf schuko.Configuration, u *url.URL) (string, error) {
	cachedir, err := CacheDirPath(conf, "fonts")
	if err != nil {
		return "", err
	}
	fname := path.Base(u.Path)
	if fname == "" || fname == "/" || fname == "." {
		fname = u.Hostname() + ".ttf"
	}
	fpath := path.Join(cachedir, fname)
	if _, err := os.Stat(fpath); err == nil {
		tracer().Debugf("font %s found in cache", fname)
		return fpath, nil
	}
	tracer().Infof("downloading font %s", u.String())
	return fpath, DownloadCachedFile(fpath, u.String())
}
