package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-barry/blog"
	"github.com/go-barry/blog/core"
	"github.com/gookit/color"
	"github.com/urfave/cli/v2"
)

var CheckCommand = &cli.Command{
	Name:  "check",
	Usage: "Parse the page skeleton, render every page and verify the stylesheet exists",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		renderer, err := core.NewPageRenderer(core.WithStylesheet(cfg.Stylesheet))
		if err != nil {
			fmt.Println(color.Red.Sprintf("❌ skeleton → %v", err))
			return cli.Exit("page skeleton failed to parse", 1)
		}

		pages, err := blog.Pages(cfg)
		if err != nil {
			fmt.Println(color.Red.Sprintf("❌ pages → %v", err))
			return cli.Exit("page table failed to load", 1)
		}

		router := core.NewRouter(renderer, core.RuntimeContext{Env: "prod"}, pages...)
		routes := router.Routes()
		sort.Slice(routes, func(i, j int) bool { return routes[i].Path < routes[j].Path })

		var failed bool
		for _, route := range routes {
			if _, err := router.RenderRoute(route); err != nil {
				failed = true
				fmt.Println(color.Red.Sprintf("❌ %s → render error: %v", route.Path, err))
				continue
			}
			fmt.Println(color.Green.Sprintf("✅ %s", route.Path))
		}

		if file, ok := stylesheetFile(cfg); ok {
			if _, err := os.Stat(file); err != nil {
				failed = true
				fmt.Println(color.Red.Sprintf("❌ stylesheet %s not found (run the css build first)", file))
			} else {
				fmt.Println(color.Green.Sprintf("✅ stylesheet %s", file))
			}
		}

		if failed {
			return cli.Exit("some checks failed", 1)
		}

		fmt.Println(color.Green.Sprint("✅ All pages rendered successfully."))
		return nil
	},
}

// stylesheetFile maps the stylesheet href onto the asset directory. Hrefs
// outside /assets/ are not checked.
func stylesheetFile(cfg core.Config) (string, bool) {
	rel, ok := strings.CutPrefix(cfg.Stylesheet, "/assets/")
	if !ok {
		return "", false
	}
	return filepath.Join(cfg.AssetsDir, filepath.FromSlash(rel)), true
}
