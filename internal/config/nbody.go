package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrMassCount     = errors.New("config: mass count differs from NumberOfBodies")
	ErrPositionCount = errors.New("config: position count differs from NumberOfBodies")
)

// NBody describes an N-body problem. It is a plain record: no forces are
// derived from it.
type NBody struct {
	SettingName    string      `yaml:"SettingName"`
	NumberOfBodies int         `yaml:"NumberOfBodies"`
	Mass           []float64   `yaml:"Mass"`
	Position       [][]float64 `yaml:"Position"`
}

// LoadProblem decodes an N-body problem file. The result is not checked;
// call Check before using it.
func LoadProblem(path string) (*NBody, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseProblem(data)
}

func ParseProblem(data []byte) (*NBody, error) {
	var nb NBody
	if err := yaml.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("parse problem: %w", err)
	}
	return &nb, nil
}

// Check verifies that the mass and position lists both hold one entry per body.
func (nb *NBody) Check() error {
	if len(nb.Mass) != nb.NumberOfBodies {
		return fmt.Errorf("%w: %d masses for %d bodies", ErrMassCount, len(nb.Mass), nb.NumberOfBodies)
	}
	if len(nb.Position) != nb.NumberOfBodies {
		return fmt.Errorf("%w: %d positions for %d bodies", ErrPositionCount, len(nb.Position), nb.NumberOfBodies)
	}
	return nil
}

func (nb *NBody) TotalMass() float64 {
	total := 0.0
	for _, m := range nb.Mass {
		total += m
	}
	return total
}
