// Package project reads and writes aqconf.yaml, the per-project file
// that names the entry point the CLI commands fall back to when no
// source file is given.
package project

import (
	"os"
	"path"

	"github.com/jannah-ayman/arcanequest-lang/util"
	"gopkg.in/yaml.v3"
)

// ConfFile is the well-known config file name looked up in a project
// directory.
const ConfFile = "aqconf.yaml"

type AqConf struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
	Main        string `yaml:"main"`
	SourceDir   string `yaml:"source"`
	Author      string `yaml:"author"`
	License     string `yaml:"license"`
}

func (c *AqConf) CreateDefault(name string) {
	if name == "" || name == "." {
		name = "NewQuest"
	}
	c.Name = name
	c.Description = "A new ArcaneQuest project"
	c.Version = "1.0.0"
	c.Main = "src/main.aq"
	c.SourceDir = "src"
	c.Author = "Anonymous"
	c.License = "MIT"
}

func (c *AqConf) Save(filepath string, overwrite bool) error {
	if _, err := os.Stat(filepath); !os.IsNotExist(err) {
		if !overwrite && !util.PromptYN(filepath+" already exists. Overwrite?", false) {
			return nil
		}
	}

	yml, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, yml, 0644)
}

func GetAqConf(dir string) (AqConf, error) {
	var conf AqConf

	file, err := os.Open(path.Join(dir, ConfFile))
	if err != nil {
		return AqConf{}, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&conf); err != nil {
		return AqConf{}, err
	}
	return conf, nil
}
