package core

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minjs "github.com/tdewolff/minify/v2/js"
)

var compressible = map[string]bool{
	".css":  true,
	".js":   true,
	".svg":  true,
	".html": true,
	".txt":  true,
	".json": true,
	".xml":  true,
}

type BuildReport struct {
	Minified   []string
	Compressed []string
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	m.AddFunc("application/javascript", minjs.Minify)
	return m
}

// BuildAssets writes a minified copy next to every css and js file and a gzip
// sibling next to every compressible file below root. Sources are never
// modified.
func BuildAssets(root string) (BuildReport, error) {
	var report BuildReport
	var sources []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || IsGenerated(path) {
			return nil
		}
		sources = append(sources, path)
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("walk %s: %w", root, err)
	}

	m := newMinifier()
	for _, src := range sources {
		ext := filepath.Ext(src)
		alreadyMin := strings.HasSuffix(strings.TrimSuffix(src, ext), ".min")
		if (ext == ".css" || ext == ".js") && !alreadyMin {
			out, err := minifyFile(m, src)
			if err != nil {
				return report, err
			}
			report.Minified = append(report.Minified, out)
			if err := gzipFile(out); err != nil {
				return report, err
			}
			report.Compressed = append(report.Compressed, out+".gz")
		}
		if compressible[ext] {
			if err := gzipFile(src); err != nil {
				return report, err
			}
			report.Compressed = append(report.Compressed, src+".gz")
		}
	}

	return report, nil
}

// CleanAssets removes everything BuildAssets generated and reports how many
// files were deleted. Generated files are collected before any is removed,
// since a .min.css.gz only counts as generated while its .min.css exists.
func CleanAssets(root string) (int, error) {
	var generated []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsGenerated(path) {
			generated = append(generated, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("clean %s: %w", root, err)
	}

	removed := 0
	for _, path := range generated {
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("clean %s: %w", root, err)
		}
		removed++
	}
	return removed, nil
}

func minifiedName(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".min" + ext
}

// IsGenerated reports whether path is a gzip sibling or a .min copy whose
// source still exists. Hand-written .gz and .min files without a source are
// kept.
func IsGenerated(path string) bool {
	if source, ok := strings.CutSuffix(path, ".gz"); ok {
		return isFile(source)
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	if !strings.HasSuffix(base, ".min") {
		return false
	}
	return isFile(strings.TrimSuffix(base, ".min") + ext)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func minifyFile(m *minify.M, src string) (string, error) {
	original, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}

	mediatype := "text/css"
	if filepath.Ext(src) == ".js" {
		mediatype = "application/javascript"
	}

	var buf bytes.Buffer
	if err := m.Minify(mediatype, &buf, bytes.NewReader(original)); err != nil {
		return "", fmt.Errorf("minify %s: %w", src, err)
	}

	out := minifiedName(src)
	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return out, nil
}

// gzipFile writes path+".gz" through a temporary file so a failed write
// never leaves a truncated sibling behind.
func gzipFile(path string) (err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	gz, err := gzip.NewWriterLevel(tmp, gzip.BestCompression)
	if err != nil {
		return err
	}
	if _, err = gz.Write(content); err != nil {
		return err
	}
	if err = gz.Close(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path+".gz"); err != nil {
		return fmt.Errorf("gzip %s: %w", path, err)
	}
	return nil
}
