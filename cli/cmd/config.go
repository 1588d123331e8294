package cmd

import (
	"errors"
	"os"
	"path"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Target is one named generation target from cola.yaml: an input file and
// the generate options to run it with.
type Target struct {
	Input   string `yaml:"input" validate:"required"`
	Mode    string `yaml:"mode" validate:"omitempty,oneof=crate module"`
	Package string `yaml:"package" validate:"omitempty"`
	Output  string `yaml:"output" validate:"omitempty"`
}

// Config is the cola.yaml project file: a set of named generation targets,
// mirroring the teacher's named-databases shape.
type Config struct {
	Targets map[string]Target `yaml:"targets" validate:"dive"`
}

var configValidate = validator.New()

// LoadConfig reads and validates cola.yaml from the working directory,
// rejecting a target missing its required input path instead of silently
// binding an incomplete struct the way the teacher's unchecked YAML load did.
func LoadConfig() (Config, error) {
	var result Config

	configFilename := path.Join(directory, "cola.yaml")
	if _, err := os.Stat(configFilename); os.IsNotExist(err) {
		return Config{}, errors.New("no cola.yaml found in " + directory)
	}

	yamlFile, err := os.ReadFile(configFilename)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(yamlFile, &result); err != nil {
		return Config{}, err
	}
	if err := configValidate.Struct(&result); err != nil {
		return Config{}, err
	}
	return result, nil
}
