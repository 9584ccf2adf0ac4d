package core

import (
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

var contentTypes = map[string]string{
	".css":   "text/css; charset=utf-8",
	".js":    "application/javascript",
	".json":  "application/json",
	".html":  htmlContentType,
	".txt":   "text/plain; charset=utf-8",
	".webp":  "image/webp",
	".svg":   "image/svg+xml",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".ico":   "image/x-icon",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
}

// DetectMimeType infers a content type from the file extension only.
func DetectMimeType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// AssetHandler serves files below Root. It expects the URL prefix to be
// stripped already. With Precompressed set, a gzip sibling written by
// BuildAssets is served instead of the file while it is not older than it.
type AssetHandler struct {
	Root          string
	CacheControl  string
	Precompressed bool
}

func NewAssetHandler(root, env string) *AssetHandler {
	if env == "dev" {
		return &AssetHandler{Root: root, CacheControl: "no-store"}
	}
	return &AssetHandler{Root: root, CacheControl: "public, max-age=3600", Precompressed: true}
}

func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/")
	if rel == "" {
		http.NotFound(w, r)
		return
	}
	if hasDotDot(rel) {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}

	file, info, err := h.resolve(rel)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if h.Precompressed {
		w.Header().Set("Vary", "Accept-Encoding")
		if gz, ok := freshSibling(file+".gz", info); ok && acceptsGzip(r) {
			w.Header().Set("Content-Encoding", "gzip")
			serveFileWithHeaders(w, r, gz, DetectMimeType(file), h.CacheControl)
			return
		}
	}

	serveFileWithHeaders(w, r, file, DetectMimeType(file), h.CacheControl)
}

func (h *AssetHandler) resolve(rel string) (string, os.FileInfo, error) {
	file := filepath.Join(h.Root, filepath.FromSlash(path.Clean("/" + rel)))
	info, err := os.Stat(file)
	if err != nil {
		return "", nil, err
	}
	if info.IsDir() {
		return "", nil, ErrNotFound
	}
	return file, info, nil
}

// freshSibling reports whether gz is a regular file written no earlier than
// the source it compresses.
func freshSibling(gz string, source os.FileInfo) (string, bool) {
	info, err := os.Stat(gz)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return gz, !info.ModTime().Before(source.ModTime())
}

func serveFileWithHeaders(w http.ResponseWriter, r *http.Request, file, contentType, cacheControl string) {
	f, err := os.Open(file)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", contentType)
	if cacheControl != "" {
		w.Header().Set("Cache-Control", cacheControl)
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// acceptsGzip reads Accept-Encoding as a list of codings with optional
// q-values. An explicit gzip entry wins over "*"; q=0 refuses the coding.
func acceptsGzip(r *http.Request) bool {
	wildcard := -1.0
	for _, part := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		coding, params, _ := strings.Cut(part, ";")
		coding = strings.ToLower(strings.TrimSpace(coding))
		if coding != "gzip" && coding != "*" {
			continue
		}
		q := qValue(params)
		if coding == "gzip" {
			return q > 0
		}
		wildcard = q
	}
	return wildcard > 0
}

func qValue(params string) float64 {
	for _, p := range strings.Split(params, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || q < 0 {
			return 0
		}
		return q
	}
	return 1
}

func hasDotDot(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}
