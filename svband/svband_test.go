package svband

import (
	"math"
	"testing"

	"github.com/dyang37/go-sysmat/forward"
	"github.com/dyang37/go-sysmat/model"
)

func buildGrid(img model.ImageParams, sino model.SinoParams) ([]model.Column, [][]uint8, model.MaxScale) {
	ppt := forward.BuildPixelProfileTable(sino, img)
	b := forward.NewBuilder(img, sino, ppt)

	n := img.Nx * img.Ny
	columns := make([]model.Column, n)
	quantized := make([][]uint8, n)
	maxScale := make(model.MaxScale, n)

	for r := 0; r < img.Ny; r++ {
		for c := 0; c < img.Nx; c++ {
			idx := r*img.Nx + c
			col, values := b.Column(r, c)
			columns[idx] = col
			q, m := forward.Quantize(values)
			quantized[idx] = q
			maxScale[idx] = m
		}
	}
	return columns, quantized, maxScale
}

func allTrue(n int) []bool {
	m := make([]bool, n)
	for i := range m {
		m[i] = true
	}
	return m
}

func TestPlanProducesExpectedOriginCount(t *testing.T) {
	img := model.ImageParams{Nx: 3, Ny: 3, Deltaxy: 1}
	sv := model.SVParams{SVLength: 1, Overlap: 1, PieceLength: 1}

	origins := Plan(img, sv)
	// stride = 2*1-1 = 1, so every row/col is an origin: 3*3 = 9.
	if len(origins) != 9 {
		t.Fatalf("got %d origins, want 9", len(origins))
	}
}

func TestMembersExcludesOutsideMaskAndEmptyColumn(t *testing.T) {
	img := model.ImageParams{Nx: 3, Ny: 3, Deltaxy: 1}
	sino := model.SinoParams{NViews: 2, NChannels: 5, DeltaChannel: 1, ViewAngles: []float64{0, math.Pi / 2}}
	sv := model.SVParams{SVLength: 1, Overlap: 1, PieceLength: 1}

	columns, _, _ := buildGrid(img, sino)
	mask := allTrue(img.Nx * img.Ny)
	// Exclude the top-left voxel from the mask.
	mask[0] = false
	// Give voxel (0,1) an empty column.
	columns[1].NIndex = 0

	origin := 0 // jy=0,jx=0
	members := Members(origin, img, sv, mask, columns)
	for _, idx := range members {
		if idx == 0 {
			t.Fatalf("masked-out voxel 0 should not be a member")
		}
		if idx == 1 {
			t.Fatalf("empty-column voxel 1 should not be a member")
		}
	}
}

func TestEqualizeBandInvariants(t *testing.T) {
	img := model.ImageParams{Nx: 3, Ny: 3, Deltaxy: 1}
	sino := model.SinoParams{NViews: 2, NChannels: 5, DeltaChannel: 1, ViewAngles: []float64{0, math.Pi / 2}}
	sv := model.SVParams{SVLength: 1, Overlap: 1, PieceLength: 1}

	columns, quantized, _ := buildGrid(img, sino)
	mask := allTrue(img.Nx * img.Ny)
	ImputeSentinels(columns, sino.NChannels)

	origin := img.Nx + 1 // center voxel (1,1)
	members := Members(origin, img, sv, mask, columns)
	band, bandWidth := EqualizeBand(members, columns, sino.NViews, sino.NChannels, sv.PieceLength)

	for p, w := range bandWidth {
		base := p * sv.PieceLength
		if band.BandMin[base]+w > int32(sino.NChannels) {
			t.Fatalf("piece %d: bandMin=%d width=%d exceeds NChannels=%d", p, band.BandMin[base], w, sino.NChannels)
		}
	}

	for _, idx := range members {
		pv := PackVoxel(&columns[idx], quantized[idx], band, sv.PieceLength, sino.NViews)
		sum := 0
		for _, w := range pv.PieceWiseWidth {
			sum += int(w)
		}
		if pv.Length != sv.PieceLength*sum {
			t.Fatalf("voxel %d: length=%d, want pieceLength*sum(pieceWiseWidth)=%d", idx, pv.Length, sv.PieceLength*sum)
		}
		for p, w := range pv.PieceWiseWidth {
			if w > bandWidth[p] {
				t.Fatalf("voxel %d piece %d: pieceWiseWidth=%d exceeds bandWidth=%d", idx, p, w, bandWidth[p])
			}
		}
	}
}

func TestSlotOfLinearization(t *testing.T) {
	img := model.ImageParams{Nx: 5, Ny: 5, Deltaxy: 1}
	sv := model.SVParams{SVLength: 1, Overlap: 1, PieceLength: 1}

	origin := 1*img.Nx + 1 // jy=1, jx=1
	// voxel (2,2) -> slot (2-1)*3+(2-1) = 4 (the SV's own center)
	slot := SlotOf(2*img.Nx+2, origin, img, sv)
	if slot != 4 {
		t.Fatalf("slot = %d, want 4", slot)
	}
}

func TestPackVoxelEmptySlotsAreZero(t *testing.T) {
	img := model.ImageParams{Nx: 3, Ny: 3, Deltaxy: 1}
	sino := model.SinoParams{NViews: 2, NChannels: 5, DeltaChannel: 1, ViewAngles: []float64{0, math.Pi / 2}}
	sv := model.SVParams{SVLength: 1, Overlap: 1, PieceLength: 1}

	columns, quantized, _ := buildGrid(img, sino)
	mask := allTrue(img.Nx * img.Ny)
	mask[0] = false // top-left voxel excluded
	ImputeSentinels(columns, sino.NChannels)

	origin := 0
	members := Members(origin, img, sv, mask, columns)
	band, _ := EqualizeBand(members, columns, sino.NViews, sino.NChannels, sv.PieceLength)
	asv := PackSV(origin, members, img, sv, sino.NViews, columns, quantized, band)

	excludedSlot := SlotOf(0, origin, img, sv)
	if asv.Voxels[excludedSlot].Length != 0 || asv.Voxels[excludedSlot].Val != nil {
		t.Fatalf("excluded voxel slot should have Length==0 and nil Val, got length=%d val=%v", asv.Voxels[excludedSlot].Length, asv.Voxels[excludedSlot].Val)
	}
}
