// Package ioseed places fixed-role IO blocks at pre-determined grid edge
// cells (§4.6), before clustering sees the netlist at all.
package ioseed

import (
	"sort"

	"github.com/sarchlab/zplace/errs"
	"github.com/sarchlab/zplace/geometry"
	"github.com/sarchlab/zplace/netlist"
)

// Direction classifies an IO block by which way data flows relative to
// the fabric.
type Direction int

const (
	// Input pads drive data into the fabric: the block is the source
	// pin (first entry) of at least one net it appears on.
	Input Direction = iota
	// Output pads sink data out of the fabric.
	Output
)

// DirectionOf derives an IO block's direction from the netlist: if it is
// ever the source pin of a net, it's an Input pad, otherwise Output.
func DirectionOf(nl netlist.Netlist, io netlist.BlockId) Direction {
	for _, id := range nl.SortedNetIds() {
		n := nl.Nets[id]
		if len(n.Pins) == 0 {
			continue
		}
		if n.Pins[0].Block == io {
			return Input
		}
	}
	return Output
}

// Seed assigns every IO block to a perimeter cell of matching direction.
// ioCells is the caller-supplied, device-specific perimeter cell list;
// its first half becomes the input-cell pool (consumed ascending by x),
// its second half becomes the output-cell pool (consumed ascending by
// y). IO blocks are assigned in ascending numeric-suffix order.
func Seed(nl netlist.Netlist, ioCells []geometry.Position, ioBlocks []netlist.BlockId) (netlist.FixedPositions, error) {
	half := len(ioCells) / 2
	inputCells := append([]geometry.Position{}, ioCells[:half]...)
	outputCells := append([]geometry.Position{}, ioCells[half:]...)

	sort.Slice(inputCells, func(i, j int) bool { return inputCells[i].X < inputCells[j].X })
	sort.Slice(outputCells, func(i, j int) bool { return outputCells[i].Y < outputCells[j].Y })

	sorted := make([]netlist.BlockId, len(ioBlocks))
	copy(sorted, ioBlocks)
	netlist.SortBlocks(sorted)

	var inputs, outputs []netlist.BlockId
	for _, b := range sorted {
		if DirectionOf(nl, b) == Input {
			inputs = append(inputs, b)
		} else {
			outputs = append(outputs, b)
		}
	}

	if len(inputs) > len(inputCells) || len(outputs) > len(outputCells) {
		return nil, errs.New(errs.DeviceCapacity,
			"not enough IO cells: need %d in / %d out, have %d in / %d out",
			len(inputs), len(outputs), len(inputCells), len(outputCells))
	}

	positions := make(netlist.FixedPositions, len(ioBlocks))
	for i, b := range inputs {
		positions[b] = inputCells[i]
	}
	for i, b := range outputs {
		positions[b] = outputCells[i]
	}
	return positions, nil
}
