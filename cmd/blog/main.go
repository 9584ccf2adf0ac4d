package main

import (
	"os"

	blogcli "github.com/go-barry/blog/cli"
	log "github.com/sirupsen/logrus"
	clilib "github.com/urfave/cli/v2"
)

func newApp() *clilib.App {
	return &clilib.App{
		Name:  "blog",
		Usage: "A small personal blog server",
		Commands: []*clilib.Command{
			blogcli.InitCommand,
			blogcli.DevCommand,
			blogcli.ProdCommand,
			blogcli.BuildCommand,
			blogcli.CleanCommand,
			blogcli.CheckCommand,
			blogcli.InfoCommand,
		},
	}
}

func runApp(args []string) error {
	return newApp().Run(args)
}

func main() {
	if err := runApp(os.Args); err != nil {
		log.Fatal(err)
	}
}
