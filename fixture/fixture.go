// Package fixture loads device/netlist/options test fixtures from YAML,
// grounded on the teacher's core.LoadProgramFileFromYAML
// (gopkg.in/yaml.v3 + os.ReadFile).
package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/geometry"
	"github.com/sarchlab/zplace/netlist"
)

// YAMLDevice is the on-disk device description.
type YAMLDevice struct {
	Width   int              `yaml:"width"`
	Height  int              `yaml:"height"`
	Margin  int              `yaml:"margin"`
	ClbType string           `yaml:"clb_type"`
	Cells   []YAMLCellRegion `yaml:"cells"`
}

// YAMLCellRegion overrides the type of every cell in [x0,x1) x [y0,y1).
type YAMLCellRegion struct {
	X0   int    `yaml:"x0"`
	Y0   int    `yaml:"y0"`
	X1   int    `yaml:"x1"`
	Y1   int    `yaml:"y1"`
	Type string `yaml:"type"`
}

// YAMLPin is one (block, port) pin on a net.
type YAMLPin struct {
	Block string `yaml:"block"`
	Port  string `yaml:"port"`
}

// YAMLNet is one net, listing its pins in source-first order.
type YAMLNet struct {
	ID   string    `yaml:"id"`
	Pins []YAMLPin `yaml:"pins"`
}

// YAMLFixedPosition pre-places a block.
type YAMLFixedPosition struct {
	Block string `yaml:"block"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
}

// YAMLFixture is the top-level fixture document: a device, a netlist,
// and fixed positions, used by package-level tests and the place
// package's end-to-end scenarios (§8).
type YAMLFixture struct {
	Device YAMLDevice `yaml:"device"`
	// Blocks explicitly registers blocks that may have no net membership
	// (isolated blocks) so they are never lost; blocks that do appear on
	// a net need not be listed again.
	Blocks         []string            `yaml:"blocks"`
	Nets           []YAMLNet           `yaml:"nets"`
	FixedPositions []YAMLFixedPosition `yaml:"fixed_positions"`
}

// Fixture is the decoded, ready-to-use form of a YAMLFixture.
type Fixture struct {
	Device  *device.Device
	Netlist netlist.Netlist
	Fixed   netlist.FixedPositions
}

// Load reads and decodes a fixture file from disk.
func Load(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses YAML fixture bytes into a Fixture.
func Decode(data []byte) (Fixture, error) {
	var doc YAMLFixture
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Fixture{}, fmt.Errorf("fixture: parse yaml: %w", err)
	}

	clb := device.CellType('c')
	if doc.Device.ClbType != "" {
		clb = device.CellType(doc.Device.ClbType[0])
	}
	dev := device.Builder{}.
		WithSize(doc.Device.Width, doc.Device.Height).
		WithMargin(doc.Device.Margin).
		WithClbType(clb).
		Build()
	for _, region := range doc.Device.Cells {
		t := device.CellType(region.Type[0])
		for y := region.Y0; y < region.Y1; y++ {
			for x := region.X0; x < region.X1; x++ {
				dev.SetCellType(x, y, t)
			}
		}
	}

	nl := netlist.New()
	for _, b := range doc.Blocks {
		nl.Register(netlist.BlockId(b))
	}
	for _, n := range doc.Nets {
		pins := make([]netlist.Pin, 0, len(n.Pins))
		for _, p := range n.Pins {
			pins = append(pins, netlist.Pin{Block: netlist.BlockId(p.Block), Port: netlist.Port(p.Port)})
		}
		nl.Nets[netlist.NetId(n.ID)] = netlist.Net{ID: netlist.NetId(n.ID), Pins: pins}
	}

	fixed := make(netlist.FixedPositions, len(doc.FixedPositions))
	for _, f := range doc.FixedPositions {
		fixed[netlist.BlockId(f.Block)] = geometry.Position{X: f.X, Y: f.Y}
	}

	return Fixture{Device: dev, Netlist: nl, Fixed: fixed}, nil
}
