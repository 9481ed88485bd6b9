//nolint:paralleltest // this test doesn't need parallel execution
package bwcdkutil_test

import (
	"slices"
	"testing"

	"github.com/basewarphq/bwtasks/bwcdk/bwcdkutil"
)

func TestRegionIdentFor(t *testing.T) {
	tests := []struct {
		region    string
		wantIdent string
	}{
		{"us-east-1", "Use1"},
		{"eu-west-1", "Euw1"},
		{"eu-central-1", "Euc1"},
		{"ap-southeast-1", "Ase1"},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			if got := bwcdkutil.RegionIdentFor(tt.region); got != tt.wantIdent {
				t.Errorf("RegionIdentFor(%q) = %q, want %q", tt.region, got, tt.wantIdent)
			}
		})
	}
}

func TestRegionIdentForPanicsOnUnknown(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for unknown region")
		}
	}()

	bwcdkutil.RegionIdentFor("unknown-region-1")
}

func TestAllKnownRegions(t *testing.T) {
	regions := bwcdkutil.AllKnownRegions()
	if len(regions) != len(bwcdkutil.RegionIdents) {
		t.Fatalf("got %d regions, want %d", len(regions), len(bwcdkutil.RegionIdents))
	}
	if !slices.IsSorted(regions) {
		t.Error("regions should be sorted")
	}
	if !bwcdkutil.IsKnownRegion(regions[0]) {
		t.Errorf("%q should be known", regions[0])
	}
}
