package sensitivity

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ScenarioFile declares a sensitivity grid in YAML:
//
//	name: rate and exit stress
//	overrides:
//	  starting_rate: [180, 200, 220]
//	  exit_cap_rate: [0.065, 0.07, 0.075]
type ScenarioFile struct {
	Name      string               `yaml:"name"`
	Overrides map[string][]float64 `yaml:"overrides"`
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (*ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "sensitivity: read scenario %s", path)
	}
	var sf ScenarioFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, eris.Wrapf(err, "sensitivity: parse scenario %s", path)
	}
	if len(sf.Overrides) == 0 {
		return nil, eris.Errorf("sensitivity: scenario %s declares no overrides", path)
	}
	return &sf, nil
}

// Grid converts the scenario declaration into a runnable grid.
func (s *ScenarioFile) Grid() Grid {
	return Grid(s.Overrides)
}
