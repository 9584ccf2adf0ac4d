package cli

import (
	"fmt"

	"github.com/go-barry/blog/core"
	"github.com/urfave/cli/v2"
)

var BuildCommand = &cli.Command{
	Name:  "build",
	Usage: "Minify css/js assets and write gzip siblings for the asset route",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		fmt.Println("📦 Building assets in:", cfg.AssetsDir)
		report, err := core.BuildAssets(cfg.AssetsDir)
		if err != nil {
			return fmt.Errorf("failed to build assets: %w", err)
		}

		for _, f := range report.Minified {
			fmt.Println("🔧 Minified:", f)
		}
		fmt.Printf("✅ %d minified, %d compressed.\n", len(report.Minified), len(report.Compressed))
		return nil
	},
}
