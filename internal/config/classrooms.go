package config

import (
	"fmt"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// ClassroomConfig is a single entry of the closed classroom vocabulary.
type ClassroomConfig struct {
	Name     string `yaml:"name"`
	Floor    int    `yaml:"floor"`
	Capacity int    `yaml:"capacity"`
	IsActive bool   `yaml:"is_active"`
}

// ClassroomsConfig is the root of classrooms.yaml.
type ClassroomsConfig struct {
	Classrooms []ClassroomConfig `yaml:"classrooms"`
}

// LoadClassroomsConfig loads and validates the classroom vocabulary.
func LoadClassroomsConfig(path string) (*ClassroomsConfig, error) {
	if path == "" {
		path = "configs/classrooms.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read classrooms config: %w", err)
	}

	var cfg ClassroomsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse classrooms config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate classrooms config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the vocabulary for errors.
func (c *ClassroomsConfig) Validate() error {
	if len(c.Classrooms) == 0 {
		return fmt.Errorf("no classrooms defined")
	}

	names := make(map[string]bool)
	for i, room := range c.Classrooms {
		if room.Name == "" {
			return fmt.Errorf("classroom[%d]: name is required", i)
		}
		if names[room.Name] {
			return fmt.Errorf("classroom[%d]: duplicate name '%s'", i, room.Name)
		}
		names[room.Name] = true

		if room.Capacity < 0 {
			return fmt.Errorf("classroom[%d]: capacity cannot be negative", i)
		}
	}
	return nil
}

// Has reports whether name belongs to the active vocabulary.
func (c *ClassroomsConfig) Has(name string) bool {
	for _, room := range c.Classrooms {
		if room.IsActive && room.Name == name {
			return true
		}
	}
	return false
}

// ActiveNames returns the active classroom names in config order.
func (c *ClassroomsConfig) ActiveNames() []string {
	names := make([]string, 0, len(c.Classrooms))
	for _, room := range c.Classrooms {
		if room.IsActive {
			names = append(names, room.Name)
		}
	}
	return names
}

// String returns a summary of the vocabulary.
func (c *ClassroomsConfig) String() string {
	return fmt.Sprintf("ClassroomsConfig: %d classrooms (%d active)",
		len(c.Classrooms), len(c.ActiveNames()))
}

// ClassroomsHolder publishes the current vocabulary to readers while the
// watcher swaps it in the background.
type ClassroomsHolder struct {
	v atomic.Value
}

func (h *ClassroomsHolder) Store(c *ClassroomsConfig) {
	h.v.Store(c)
}

func (h *ClassroomsHolder) Load() *ClassroomsConfig {
	c, _ := h.v.Load().(*ClassroomsConfig)
	return c
}
