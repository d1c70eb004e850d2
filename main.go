package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

// commands is filled by the init functions of the command files.
var commands []*cli.Command

func main() {
	app := &cli.App{
		Name:                   "arcanequest",
		Usage:                  "Scanner and parser for the ArcaneQuest language",
		Version:                "1.0.0",
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Commands:               commands,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
