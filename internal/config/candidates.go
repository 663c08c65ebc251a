package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type candidatesFile struct {
	Candidates []string `yaml:"candidates"`
}

// LoadCandidates reads a seed file of the form
//
//	candidates:
//	  - Alice
//	  - Bob
//
// Order is kept: it is the registration order and decides ties.
func LoadCandidates(file string) ([]string, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read candidates file: %w", err)
	}
	var c candidatesFile
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse candidates file %s: %w", file, err)
	}
	return c.Candidates, nil
}
