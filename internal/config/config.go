// Package config loads the gym profile from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/liftwise/coach/internal/exercise"
	"github.com/liftwise/coach/internal/workout"
)

// GymConfig mirrors the YAML gym profile file.
type GymConfig struct {
	BarWeightKg float64   `yaml:"bar_weight_kg"`
	PlatesKg    []float64 `yaml:"plates_kg"`
	DumbbellsKg []float64 `yaml:"dumbbells_kg"`
	Equipment   []string  `yaml:"equipment"`
}

// LoadGymProfile reads a gym profile from a YAML file. An empty path
// returns the default fully equipped profile.
func LoadGymProfile(path string) (workout.GymProfile, error) {
	if path == "" {
		return workout.DefaultGymProfile(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return workout.GymProfile{}, fmt.Errorf("reading gym config file: %w", err)
	}
	var cfg GymConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return workout.GymProfile{}, fmt.Errorf("parsing gym config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return workout.GymProfile{}, fmt.Errorf("gym config validation: %w", err)
	}

	return cfg.toProfile(), nil
}

func (c GymConfig) toProfile() workout.GymProfile {
	profile := workout.GymProfile{
		BarWeightKg: c.BarWeightKg,
		PlatesKg:    c.PlatesKg,
		DumbbellsKg: c.DumbbellsKg,
	}
	for _, eq := range c.Equipment {
		profile.Equipment = append(profile.Equipment, exercise.Equipment(eq))
	}
	return profile
}

func (c GymConfig) validate() error {
	if c.BarWeightKg < 0 {
		return fmt.Errorf("bar_weight_kg must not be negative")
	}
	for _, p := range c.PlatesKg {
		if p <= 0 {
			return fmt.Errorf("plates_kg entries must be positive, got %v", p)
		}
	}
	for _, d := range c.DumbbellsKg {
		if d <= 0 {
			return fmt.Errorf("dumbbells_kg entries must be positive, got %v", d)
		}
	}
	known := map[exercise.Equipment]bool{
		exercise.EquipmentBarbell:    true,
		exercise.EquipmentRack:       true,
		exercise.EquipmentBench:      true,
		exercise.EquipmentDumbbell:   true,
		exercise.EquipmentCable:      true,
		exercise.EquipmentMachine:    true,
		exercise.EquipmentPullupBar:  true,
		exercise.EquipmentDipStation: true,
	}
	for _, eq := range c.Equipment {
		if !known[exercise.Equipment(eq)] {
			return fmt.Errorf("unknown equipment %q", eq)
		}
	}
	return nil
}
