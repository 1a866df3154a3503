// Package config describes the datasets the fwtable tool knows about.
package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/dropbox/godropbox/errors"
	"gopkg.in/yaml.v3"
)

// Dataset names a dictionary and the data file it describes.  Relative paths
// are resolved against the directory of the config file.
type Dataset struct {
	Dictionary string `yaml:"dictionary"`
	Data       string `yaml:"data"`
	// Format is "fixed" (default) or "csv".
	Format      string `yaml:"format"`
	Compression string `yaml:"compression"`
	// ShortRecords is "fail" (default) or "pad".
	ShortRecords string `yaml:"short_records"`
}

type Config struct {
	// Default is used when no dataset is named on the command line.
	Default  string              `yaml:"default"`
	Datasets map[string]*Dataset `yaml:"datasets"`
}

// DefaultConfig knows the NSFG 2002 respondent and pregnancy files, expected
// in the working directory.
func DefaultConfig() *Config {
	return &Config{
		Default: "resp",
		Datasets: map[string]*Dataset{
			"resp": {
				Dictionary: "2002FemResp.dct",
				Data:       "2002FemResp.dat.gz",
			},
			"preg": {
				Dictionary: "2002FemPreg.dct",
				Data:       "2002FemPreg.dat.gz",
			},
		},
	}
}

// Load returns DefaultConfig if path does not exist.  Datasets in the file
// replace defaults of the same name.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "failed to read config %v", path)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %v", path)
	}
	dir := filepath.Dir(path)
	for name, ds := range fileCfg.Datasets {
		if ds == nil {
			return nil, errors.Newf("dataset %v in %v is empty", name, path)
		}
		ds.Dictionary = resolve(dir, ds.Dictionary)
		ds.Data = resolve(dir, ds.Data)
		cfg.Datasets[name] = ds
	}
	if fileCfg.Default != "" {
		cfg.Default = fileCfg.Default
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func (c *Config) Validate() error {
	if _, ok := c.Datasets[c.Default]; !ok {
		return errors.Newf("default dataset %v is not defined", c.Default)
	}
	for _, name := range c.Names() {
		ds := c.Datasets[name]
		if ds.Dictionary == "" || ds.Data == "" {
			return errors.Newf("dataset %v needs both dictionary and data", name)
		}
		switch ds.Format {
		case "", "fixed", "csv":
		default:
			return errors.Newf("dataset %v has unknown format %q", name, ds.Format)
		}
		switch ds.ShortRecords {
		case "", "fail", "pad":
		default:
			return errors.Newf(
				"dataset %v has unknown short_records %q", name, ds.ShortRecords)
		}
	}
	return nil
}

// Dataset returns the default dataset when name is empty.
func (c *Config) Dataset(name string) (*Dataset, error) {
	if name == "" {
		name = c.Default
	}
	ds, ok := c.Datasets[name]
	if !ok {
		return nil, errors.Newf("unknown dataset %v (have %v)", name, c.Names())
	}
	return ds, nil
}

func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Datasets))
	for name := range c.Datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
