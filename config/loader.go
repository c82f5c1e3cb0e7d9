package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"
)

// Load reads a policy from a YAML file. Fields missing from the file keep their defaults.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file %s: %w", path, err)
	}

	policy, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid policy %s: %w", path, err)
	}

	if policy.Name == "" {
		policy.Name = policyName(filepath.Base(path))
	}

	return policy, nil
}

// Parse decodes and validates a policy from YAML or JSON bytes
func Parse(data []byte) (*Policy, error) {
	policy := Default()
	if err := yaml.UnmarshalStrict(data, policy); err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}

	if err := Validate(policy); err != nil {
		return nil, err
	}

	return policy, nil
}

// LoadAll reads all YAML policies from a directory. Two files resolving to
// the same policy name, explicit or derived from the filename, are an error.
func LoadAll(dir string) ([]*Policy, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read policies directory %s: %w", dir, err)
	}

	var policies []*Policy
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		policy, err := Load(path)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[policy.Name]; ok {
			return nil, fmt.Errorf("duplicate policy name %q in %s and %s", policy.Name, prev, path)
		}
		seen[policy.Name] = path
		policies = append(policies, policy)
	}

	return policies, nil
}

// LoadByNames loads specific policies by name from a directory
func LoadByNames(dir string, names []string) ([]*Policy, error) {
	var policies []*Policy
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		// Try with .yaml extension first, then .yml
		path := filepath.Join(dir, name+".yaml")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = filepath.Join(dir, name+".yml")
		}

		policy, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load policy %q: %w", name, err)
		}
		policies = append(policies, policy)
	}

	return policies, nil
}

// Validate checks that a policy would be accepted by the retry executor
func Validate(p *Policy) error {
	if p.MaxRetries < 1 {
		return fmt.Errorf("maxRetries must be at least 1, got %d", p.MaxRetries)
	}
	if math.IsNaN(p.BackoffMultiplier) || math.IsInf(p.BackoffMultiplier, 0) {
		return fmt.Errorf("backoffMultiplier must be finite, got %v", p.BackoffMultiplier)
	}
	if p.BackoffMultiplier < 1 {
		return fmt.Errorf("backoffMultiplier must be at least 1, got %v", p.BackoffMultiplier)
	}
	if p.MaxSleep.Duration < 0 {
		return fmt.Errorf("maxSleep cannot be negative, got %v", p.MaxSleep.Duration)
	}
	if p.InitialBackoff.Duration < 0 {
		return fmt.Errorf("initialBackoff cannot be negative, got %v", p.InitialBackoff.Duration)
	}
	return nil
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

func policyName(file string) string {
	return strings.TrimSuffix(strings.TrimSuffix(file, ".yaml"), ".yml")
}
