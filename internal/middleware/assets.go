package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// AssetsWithCache serves dir under /assets with Cache-Control and ETag handling.
// ETags are content hashes, recomputed when a file's size or modification time changes,
// so edits in dev mode never answer 304 with stale content.
func AssetsWithCache(dir string, dev bool) http.Handler {
	idx := &assetIndex{dir: dir, entries: map[string]assetEntry{}}
	cacheControl := "public, max-age=604800, stale-while-revalidate=86400"
	if dev {
		cacheControl = "no-cache"
	}
	files := http.StripPrefix("/assets", http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Accept-Encoding")
		w.Header().Set("Cache-Control", cacheControl)
		if et := idx.etag(strings.TrimPrefix(r.URL.Path, "/assets")); et != "" {
			w.Header().Set("ETag", et)
			if etagMatches(r.Header.Get("If-None-Match"), et) {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		files.ServeHTTP(w, r)
	})
}

type assetEntry struct {
	size    int64
	modTime time.Time
	etag    string
}

type assetIndex struct {
	dir     string
	mu      sync.Mutex
	entries map[string]assetEntry
}

// etag returns the weak content hash for a URL path below dir, or "" for missing files.
func (x *assetIndex) etag(urlPath string) string {
	clean := path.Clean("/" + urlPath)
	full := filepath.Join(x.dir, filepath.FromSlash(clean))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return ""
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	if e, ok := x.entries[clean]; ok && e.size == info.Size() && e.modTime.Equal(info.ModTime()) {
		return e.etag
	}
	et, err := fileETag(full)
	if err != nil {
		return ""
	}
	x.entries[clean] = assetEntry{size: info.Size(), modTime: info.ModTime(), etag: et}
	return et
}

// etagMatches reports whether an If-None-Match header lists et.
func etagMatches(header, et string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == et {
			return true
		}
	}
	return false
}

func fileETag(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return `W/"` + hex.EncodeToString(h.Sum(nil)[:16]) + `"`, nil
}
