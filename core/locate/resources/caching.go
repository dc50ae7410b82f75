package resources

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"

	"github.com/npillmayer/schuko"
)

// DownloadCachedFile will download a url to a local file (usually located in the
// user's cache directory).
func DownloadCachedFile(filepath string, url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download of %s failed: %s", url, resp.Status)
	}
	tmp := filepath + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err = out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, filepath)
}

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from configuration key
// `cache-dir` or, if unset, from `os.UserCacheDir()` plus an application
// specific key, taken as `app-key` from the configuration.
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(conf schuko.Configuration, subfolders ...string) (string, error) {
	cachedir := conf.GetString("cache-dir")
	if cachedir == "" {
		appkey := conf.GetString("app-key")
		tracer().Debugf("config[%s] = %s", "app-key", appkey)
		if appkey == "" {
			tracer().Errorf("application key is not set")
			appkey = "winietki"
		}
		base, err := os.UserCacheDir()
		if err != nil {
			return "", err
		}
		cachedir = path.Join(base, appkey)
	}
	cachedir = path.Join(cachedir, path.Join(subfolders...))
	tracer().Infof("caching in %s", cachedir)
	_, err := os.Stat(cachedir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(cachedir, 0755)
		if err != nil {
			return "", err
		}
	}
	return cachedir, nil
}
