package pairing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// LoadOverrides reads a manual-pairs YAML file mapping patient ID to exactly
// two source file names:
//
//	P0123:
//	  - P0123_visit1.pdf
//	  - P0123_visit3.pdf
//
// This replaces the interactive pair review: reviewers pin the pair per
// patient in the file and rerun the converter.
func LoadOverrides(path string) (map[string][2]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides file %s: %w", path, err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse overrides file %s: %w", path, err)
	}

	overrides := make(map[string][2]string, len(raw))
	for patientID, files := range raw {
		if len(files) != 2 {
			return nil, fmt.Errorf("override for patient %q must list exactly two files, got %d", patientID, len(files))
		}
		if files[0] == files[1] {
			return nil, fmt.Errorf("override for patient %q lists the same file twice", patientID)
		}
		overrides[patientID] = [2]string{files[0], files[1]}
	}
	return overrides, nil
}
