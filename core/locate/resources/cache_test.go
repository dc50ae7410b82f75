package resources

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestCacheDirPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.resources")
	defer teardown()
	//
	dir := t.TempDir()
	cachedir, err := CacheDirPath(testconfig.Conf{"cache-dir": dir}, "fonts")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fonts"), filepath.FromSlash(cachedir))
	assert.DirExists(t, cachedir)
}

func TestLocateFontDownloadsOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.resources")
	defer teardown()
	//
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "font/ttf")
		w.Write(goregular.TTF)
	}))
	defer srv.Close()
	conf := testconfig.Conf{"cache-dir": t.TempDir()}
	//
	f, err := LocateFont(conf, srv.URL+"/assets/Go-Regular.ttf").Font()
	require.NoError(t, err)
	assert.FileExists(t, f.Filepath)
	_, err = LocateFont(conf, srv.URL+"/assets/Go-Regular.ttf").Font()
	require.NoError(t, err)
	assert.Equal(t, 1, hits, "second lookup should be served from the cache")
}

func TestLocateFontDownloadFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.resources")
	defer teardown()
	//
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	conf := testconfig.Conf{"cache-dir": t.TempDir()}
	_, err := LocateFont(conf, srv.URL+"/missing.ttf").Font()
	assert.Error(t, err)
}
