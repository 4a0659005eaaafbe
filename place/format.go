package place

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/zplace/errs"
	"github.com/sarchlab/zplace/geometry"
	"github.com/sarchlab/zplace/netlist"
)

const (
	placementHeaderLine1 = "Block Name      X     Y      #Block ID"
	placementHeaderLine2 = "---------------------------------------"
)

// Serialize renders a placement in the §6 text format: a two-line
// header followed by one "<name>\t\t<x>\t<y>\t\t#<blk_id>" line per
// block, sorted by numeric suffix.
func Serialize(placement netlist.Positions) string {
	blocks := make([]netlist.BlockId, 0, len(placement))
	for b := range placement {
		blocks = append(blocks, b)
	}
	netlist.SortBlocks(blocks)

	var sb strings.Builder
	sb.WriteString(placementHeaderLine1)
	sb.WriteByte('\n')
	sb.WriteString(placementHeaderLine2)
	sb.WriteByte('\n')
	for _, b := range blocks {
		p := placement[b]
		fmt.Fprintf(&sb, "%s\t\t%d\t%d\t\t#%s\n", b, p.X, p.Y, b)
	}
	return sb.String()
}

// WriteFile serializes placement and writes it to path.
func WriteFile(path string, placement netlist.Positions) error {
	if err := os.WriteFile(path, []byte(Serialize(placement)), 0o644); err != nil {
		return errs.Wrap(errs.Internal, err, "place: write %s", path)
	}
	return nil
}

// Parse reads the §6 text format back into a Positions map. Parse is
// the left inverse of Serialize: Parse(Serialize(p)) == p for any p
// with no duplicate-suffix block ids.
func Parse(data string) (netlist.Positions, error) {
	scanner := bufio.NewScanner(strings.NewReader(data))
	out := netlist.Positions{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo <= 2 {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		b, p, err := parseLine(line)
		if err != nil {
			return nil, errs.Wrap(errs.InvalidInput, err, "place: line %d", lineNo)
		}
		out[b] = p
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(errs.InvalidInput, err, "place: scan placement text")
	}
	return out, nil
}

func parseLine(line string) (netlist.BlockId, geometry.Position, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return "", geometry.Position{}, fmt.Errorf("place: want 4 fields, got %d: %q", len(fields), line)
	}
	name := fields[0]
	x, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", geometry.Position{}, fmt.Errorf("place: bad x in %q: %w", line, err)
	}
	y, err := strconv.Atoi(fields[2])
	if err != nil {
		return "", geometry.Position{}, fmt.Errorf("place: bad y in %q: %w", line, err)
	}
	id, ok := strings.CutPrefix(fields[3], "#")
	if !ok {
		return "", geometry.Position{}, fmt.Errorf("place: missing '#' block id in %q", line)
	}
	if id != name {
		return "", geometry.Position{}, fmt.Errorf("place: block name %q and id %q disagree in %q", name, id, line)
	}
	return netlist.BlockId(name), geometry.Position{X: x, Y: y}, nil
}

// ReadFile reads and parses a placement text file from disk.
func ReadFile(path string) (netlist.Positions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, err, "place: read %s", path)
	}
	return Parse(string(data))
}
