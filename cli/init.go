package cli

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-barry/blog"
	"github.com/go-barry/blog/core"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

//go:embed all:_starter
var starterFS embed.FS

var InitCommand = &cli.Command{
	Name:  "init",
	Usage: "Write a starter config and stylesheet into the current directory",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "blog title written into the new config"},
	},
	Action: func(c *cli.Context) error {
		targetDir, err := os.Getwd()
		if err != nil {
			return err
		}
		fmt.Println("🚀 Creating blog in:", targetDir)

		written, err := copyEmbeddedDir(starterFS, "_starter", targetDir)
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		if title := c.String("title"); title != "" {
			if !slices.Contains(written, blog.DefaultConfigPath) {
				fmt.Println("⚠️  Kept existing", blog.DefaultConfigPath, "- title not applied")
			} else if err := setConfigTitle(filepath.Join(targetDir, blog.DefaultConfigPath), title); err != nil {
				return fmt.Errorf("failed to set title: %w", err)
			}
		}

		for _, f := range written {
			fmt.Println("📝 Wrote:", f)
		}
		fmt.Println("✅ Project created successfully.")
		fmt.Println("▶  Run: blog dev")
		return nil
	},
}

func setConfigTitle(path, title string) error {
	cfg, err := core.LoadConfig(path)
	if err != nil {
		return err
	}
	cfg.Title = title

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// copyEmbeddedDir copies sourceDir into targetDir without overwriting and
// returns the paths it wrote, relative to targetDir.
func copyEmbeddedDir(source fs.FS, sourceDir string, targetDir string) ([]string, error) {
	var written []string

	err := fs.WalkDir(source, sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil || rel == "." {
			return err
		}
		targetPath := filepath.Join(targetDir, rel)

		switch {
		case d.IsDir():
			return os.MkdirAll(targetPath, 0755)
		case fileExists(targetPath):
			return nil
		}

		data, err := fs.ReadFile(source, path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(targetPath, data, 0644); err != nil {
			return err
		}
		written = append(written, rel)
		return nil
	})

	return written, err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
