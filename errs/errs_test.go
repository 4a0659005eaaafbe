package errs

import (
	"fmt"
	"testing"
)

func TestIsMatchesKind(t *testing.T) {
	err := New(DeviceCapacity, "too many PEs")
	if !Is(err, DeviceCapacity) {
		t.Errorf("expected Is to match DeviceCapacity")
	}
	if Is(err, ClusterCapacity) {
		t.Errorf("expected Is to reject a mismatched kind")
	}
}

func TestIsUnwrapsWrappedErrors(t *testing.T) {
	inner := ClusterCapacityErr(5)
	outer := fmt.Errorf("retry failed: %w", inner)
	if !Is(outer, ClusterCapacity) {
		t.Errorf("expected Is to see through fmt.Errorf wrapping")
	}
}

func TestClusterCapacityErrCarriesCount(t *testing.T) {
	err := ClusterCapacityErr(12)
	if err.NumClusters != 12 {
		t.Errorf("NumClusters = %d, want 12", err.NumClusters)
	}
}
