package place

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlOptions is the on-disk shape of Options, grounded on the teacher's
// core.LoadProgramFileFromYAML — everything Options carries except
// Deadline, and Trainer and OnSummary, which are Go func values and have
// no serializable form.
type yamlOptions struct {
	FoldReg      bool    `yaml:"fold_reg"`
	Seed         uint64  `yaml:"seed"`
	NumClusters  *int    `yaml:"num_clusters"`
	IsFPGA       bool    `yaml:"is_fpga"`
	PlaceFactor  int     `yaml:"place_factor"`
	SqueezeIter  int     `yaml:"squeeze_iter"`
	EmbeddingDim int     `yaml:"embedding_dim"`
	WalkP        float64 `yaml:"walk_p"`
	WalkQ        float64 `yaml:"walk_q"`
	WalkLength   int     `yaml:"walk_length"`
	NumWalks     int     `yaml:"num_walks"`
	Workers      int     `yaml:"workers"`
}

// LoadOptionsFromYAML reads the §6 options enumeration from a YAML file.
// The caller must still set Trainer on the returned Options before
// calling Place, since a trainer function has no YAML representation.
func LoadOptionsFromYAML(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("place: read options file %s: %w", path, err)
	}

	var doc yamlOptions
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Options{}, fmt.Errorf("place: parse options yaml: %w", err)
	}

	return Options{
		FoldReg:      doc.FoldReg,
		Seed:         doc.Seed,
		NumClusters:  doc.NumClusters,
		IsFPGA:       doc.IsFPGA,
		PlaceFactor:  doc.PlaceFactor,
		SqueezeIter:  doc.SqueezeIter,
		EmbeddingDim: doc.EmbeddingDim,
		WalkP:        doc.WalkP,
		WalkQ:        doc.WalkQ,
		WalkLength:   doc.WalkLength,
		NumWalks:     doc.NumWalks,
		Workers:      doc.Workers,
	}, nil
}
