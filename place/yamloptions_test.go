package place

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOptionsFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.yaml")
	doc := "fold_reg: true\nseed: 42\nis_fpga: false\nplace_factor: 8\nwalk_length: 20\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	opts, err := LoadOptionsFromYAML(path)
	if err != nil {
		t.Fatalf("LoadOptionsFromYAML returned error: %v", err)
	}
	if !opts.FoldReg || opts.Seed != 42 || opts.PlaceFactor != 8 || opts.WalkLength != 20 {
		t.Errorf("got %+v, want fold_reg=true seed=42 place_factor=8 walk_length=20", opts)
	}
}
