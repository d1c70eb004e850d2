package main

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/jannah-ayman/arcanequest-lang/lib/project"
	"github.com/jannah-ayman/arcanequest-lang/util"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize a new ArcaneQuest project",
		Category:  "project",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "The name of the project",
			},
			&cli.StringFlag{
				Name:    "author",
				Aliases: []string{"a"},
				Usage:   "The author of the project",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Accept all defaults without prompting",
			},
		},
		Action: initProject,
	})
}

func initProject(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return cli.Exit(color.RedString("Error creating project directory: %s", err), 1)
	}

	var conf project.AqConf
	conf.CreateDefault(filepath.Base(absOr(dir)))

	if name := c.String("name"); name != "" {
		conf.Name = name
	} else if !c.Bool("yes") {
		conf.Name = util.PromptString("Project name", conf.Name)
	}
	if author := c.String("author"); author != "" {
		conf.Author = author
	} else if !c.Bool("yes") {
		conf.Author = util.PromptString("Author", conf.Author)
	}

	confPath := filepath.Join(dir, project.ConfFile)
	if err := conf.Save(confPath, c.Bool("yes")); err != nil {
		return cli.Exit(color.RedString("Error writing %s: %s", confPath, err), 1)
	}

	srcDir := filepath.Join(dir, conf.SourceDir)
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		return cli.Exit(color.RedString("Error creating source directory: %s", err), 1)
	}

	mainPath := filepath.Join(dir, conf.Main)
	if _, err := os.Stat(mainPath); os.IsNotExist(err) {
		hello := "--> " + conf.Name + "\nattack(\"Hello, World!\")\n"
		if err := os.WriteFile(mainPath, []byte(hello), 0644); err != nil {
			return cli.Exit(color.RedString("Error writing %s: %s", mainPath, err), 1)
		}
	}

	color.Green("Initialized project %s", conf.Name)
	return nil
}

func absOr(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}
