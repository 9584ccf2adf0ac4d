package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-barry/blog/core"
	"github.com/urfave/cli/v2"
)

var CleanCommand = &cli.Command{
	Name:  "clean",
	Usage: "Delete minified and gzip files written by build",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		if _, err := os.Stat(cfg.AssetsDir); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Println("🧼 Nothing to clean:", cfg.AssetsDir)
				return nil
			}
			return fmt.Errorf("failed to access path: %w", err)
		}

		fmt.Println("🧹 Cleaning:", cfg.AssetsDir)
		removed, err := core.CleanAssets(cfg.AssetsDir)
		if err != nil {
			return fmt.Errorf("failed to clean assets: %w", err)
		}

		fmt.Printf("✅ Done. Removed %d files.\n", removed)
		return nil
	},
}
