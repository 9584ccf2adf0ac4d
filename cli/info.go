package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-barry/blog"
	"github.com/go-barry/blog/core"
	"github.com/segmentio/encoding/json"
	"github.com/urfave/cli/v2"
)

type projectInfo struct {
	Config          core.Config `json:"config"`
	Routes          int         `json:"routes"`
	Assets          int         `json:"assets"`
	GeneratedAssets int         `json:"generatedAssets"`
	AssetsError     string      `json:"assetsError,omitempty"`
}

var InfoCommand = &cli.Command{
	Name:  "info",
	Usage: "Print the effective configuration and an asset summary",
	Flags: []cli.Flag{
		configFlag(),
		&cli.BoolFlag{Name: "json", Usage: "print as JSON"},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		pages, err := blog.Pages(cfg)
		if err != nil {
			return err
		}

		info := projectInfo{Config: cfg, Routes: len(pages)}
		walkErr := filepath.WalkDir(cfg.AssetsDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if core.IsGenerated(path) {
				info.GeneratedAssets++
			} else {
				info.Assets++
			}
			return nil
		})
		if walkErr != nil {
			info.AssetsError = walkErr.Error()
		}

		if c.Bool("json") {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}

		fmt.Println("🌐 Address:", cfg.Addr)
		fmt.Println("📝 Title:", cfg.Title)
		fmt.Println("📁 Assets Directory:", cfg.AssetsDir)
		fmt.Println("🎨 Stylesheet:", cfg.Stylesheet)
		fmt.Println("🔁 Debug Headers Enabled:", cfg.DebugHeaders)
		fmt.Println("🔁 Debug Logs Enabled:", cfg.DebugLogs)
		fmt.Println()
		fmt.Println("🗂️  Routes Found:", info.Routes)
		fmt.Println("📦 Assets Found:", info.Assets)
		fmt.Println("💾 Generated Assets:", info.GeneratedAssets)
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				fmt.Println("⚠️  Assets directory not found:", cfg.AssetsDir)
			} else {
				fmt.Println("⚠️  Could not read assets:", walkErr)
			}
		}

		return nil
	},
}
