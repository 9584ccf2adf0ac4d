package cli

import (
	"github.com/go-barry/blog"
	"github.com/go-barry/blog/core"

	"github.com/urfave/cli/v2"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   blog.DefaultConfigPath,
		Usage:   "path to the YAML config file",
		EnvVars: []string{"BLOG_CONFIG"},
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:    "addr",
			Usage:   "listen address, overrides the config file",
			EnvVars: []string{"BLOG_ADDR"},
		},
	}
}

func loadConfig(c *cli.Context) (core.Config, error) {
	return core.LoadConfig(c.String("config"))
}

func serveAction(env string) cli.ActionFunc {
	return func(c *cli.Context) error {
		return blog.Start(blog.RuntimeConfig{
			Env:        env,
			ConfigPath: c.String("config"),
			Addr:       c.String("addr"),
		})
	}
}

var DevCommand = &cli.Command{
	Name:   "dev",
	Usage:  "Serve the blog in dev mode (no-store assets, live reload)",
	Flags:  serveFlags(),
	Action: serveAction("dev"),
}

var ProdCommand = &cli.Command{
	Name:   "prod",
	Usage:  "Serve the blog in production mode",
	Flags:  serveFlags(),
	Action: serveAction("prod"),
}
