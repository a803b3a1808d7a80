// Package utils holds CLI-side helpers for discovering simulations and
// prompting for their parameters.
package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sentinelx/sentinelx/pkg/simulation"
)

// SimulationInfo contains information about a discovered simulation.
type SimulationInfo struct {
	Path     string
	Manifest simulation.Manifest
}

// DiscoverSimulations finds all simulation.yaml manifests under cmd/.
func DiscoverSimulations() ([]SimulationInfo, error) {
	rootDir, err := findProjectRoot()
	if err != nil {
		return nil, err
	}

	var simulations []SimulationInfo
	cmdDir := filepath.Join(rootDir, "cmd")

	err = filepath.Walk(cmdDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Name() == "simulation.yaml" {
			simInfo, err := loadManifest(path)
			if err != nil {
				fmt.Printf("Warning: failed to load %s: %v\n", path, err)
				return nil
			}
			simulations = append(simulations, *simInfo)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan for simulations: %w", err)
	}

	return simulations, nil
}

func loadManifest(path string) (*SimulationInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read simulation manifest: %w", err)
	}

	var manifest simulation.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse simulation manifest: %w", err)
	}

	return &SimulationInfo{
		Path:     filepath.Dir(path),
		Manifest: manifest,
	}, nil
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("project root not found (no go.mod above %s)", dir)
		}
		dir = parent
	}
}
