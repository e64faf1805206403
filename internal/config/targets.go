package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/Mrunal31-Stark/Web-Scraper/internal/model"
)

// defaultTargets is the built-in harvest list, used when no targets
// file is configured. Order is preserved through to the export.
var defaultTargets = []model.Target{
	{Slug: "university-hyderabad", WikiURL: "https://en.wikipedia.org/wiki/University_of_Hyderabad"},
	{Slug: "osmania-university", WikiURL: "https://en.wikipedia.org/wiki/Osmania_University"},
	{Slug: "university-madras", WikiURL: "https://en.wikipedia.org/wiki/University_of_Madras"},
	{Slug: "national-institute-technology-warangal", WikiURL: "https://en.wikipedia.org/wiki/National_Institute_of_Technology,_Warangal"},
	{Slug: "national-institute-technology-calicut", WikiURL: "https://en.wikipedia.org/wiki/National_Institute_of_Technology_Calicut"},
	{Slug: "indian-institute-technology-mandi", WikiURL: "https://en.wikipedia.org/wiki/Indian_Institute_of_Technology_Mandi"},
}

// targetsFile is the on-disk shape of a custom target list.
type targetsFile struct {
	Targets []model.Target `yaml:"targets"`
}

// LoadTargets returns the ordered target list: the YAML file at path
// when given, otherwise the built-in list.
func LoadTargets(path string) ([]model.Target, error) {
	if path == "" {
		return defaultTargets, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "targets: read %s", path)
	}

	var tf targetsFile
	if err := yaml.Unmarshal(raw, &tf); err != nil {
		return nil, eris.Wrapf(err, "targets: parse %s", path)
	}
	if len(tf.Targets) == 0 {
		return nil, eris.Errorf("targets: %s lists no targets", path)
	}
	for i, t := range tf.Targets {
		if t.Slug == "" {
			return nil, eris.Errorf("targets: entry %d has no slug", i)
		}
	}
	return tf.Targets, nil
}
