/*package config reads the YAML run configuration that controls which
summary vectors the patch command requests.

The file is optional. When it is absent the standard monitoring set is used,
and a present file only overrides the families it names, so a one-line file
tuning the monitored cells keeps the full default mnemonic set.
*/
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rfarell/spe1-case1/lib/summary"
)

// DefaultFile is the file name Load searches for when no path is given.
const DefaultFile = "spe1.yaml"

// Config mirrors the YAML run configuration.
type Config struct {
	// Cells are 1-based (i,j,k) coordinates that block vectors are
	// recorded at. An empty list monitors the grid's two corner cells.
	Cells [][3]int `yaml:"cells"`
	// Block, Field, and Well list the mnemonic families to request.
	Block []string `yaml:"block"`
	Field []string `yaml:"field"`
	Well  []string `yaml:"well"`
	// Directives are request keywords passed through unqualified, like
	// PERFORMA or RPTONLY.
	Directives []string `yaml:"directives"`
}

// Default returns the configuration used when no file is present: the
// standard monitoring set.
func Default() *Config {
	req := summary.DefaultRequests()
	return &Config{
		Block:      req.Block,
		Field:      req.Field,
		Well:       req.Well,
		Directives: req.Directives,
	}
}

// Load reads the configuration at path. An empty path searches for
// DefaultFile in the working directory and falls back to Default when it
// doesn't exist. A named path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	} else if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %s", path, err.Error())
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	for _, c := range cfg.Cells {
		if c[0] < 1 || c[1] < 1 || c[2] < 1 {
			return fmt.Errorf("the cell (%d,%d,%d) is invalid: cell "+
				"coordinates are 1-based", c[0], c[1], c[2])
		}
	}
	return nil
}

// Requests converts the configuration into the request set that
// summary.Build expands against a deck's dimensions and wells.
func (cfg *Config) Requests() summary.Requests {
	return summary.Requests{
		Block:      cfg.Block,
		Cells:      cfg.Cells,
		Field:      cfg.Field,
		Well:       cfg.Well,
		Directives: cfg.Directives,
	}
}
