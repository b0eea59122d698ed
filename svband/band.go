package svband

import "github.com/dyang37/go-sysmat/model"

// EqualizeBand computes the super-voxel's per-view detector band and
// equalizes widths over contiguous pieces of pieceLength views (§4.5,
// steps 2-6). Callers must have already run ImputeSentinels over columns.
// The returned bandWidth slice (length nViews/pieceLen) is the per-piece
// padded width used to derive PieceWiseWidth in Pack; it is not persisted
// (the on-disk BandMap carries only BandMin/BandMax, per §6).
func EqualizeBand(members []int, columns []model.Column, nViews, nChannels, pieceLen int) (model.BandMap, []int32) {
	bandMin := make([]int32, nViews)
	bandMax := make([]int32, nViews)

	for v := 0; v < nViews; v++ {
		bandMin[v] = int32(nChannels)
	}
	for _, idx := range members {
		col := &columns[idx]
		for v := 0; v < nViews; v++ {
			if int32(col.MinIndex[v]) < bandMin[v] {
				bandMin[v] = int32(col.MinIndex[v])
			}
		}
	}

	copy(bandMax, bandMin)
	for _, idx := range members {
		col := &columns[idx]
		for v := 0; v < nViews; v++ {
			end := int32(col.MinIndex[v] + col.CountTheta[v])
			if end > bandMax[v] {
				bandMax[v] = end
			}
		}
	}

	nPieces := nViews / pieceLen
	bandWidth := make([]int32, nPieces)
	for p := 0; p < nPieces; p++ {
		max := bandMax[p*pieceLen] - bandMin[p*pieceLen]
		for t := 1; t < pieceLen; t++ {
			v := p*pieceLen + t
			w := bandMax[v] - bandMin[v]
			if w > max {
				max = w
			}
		}
		bandWidth[p] = max
	}

	for v := 0; v < nViews; v++ {
		p := v / pieceLen
		if bandMin[v]+bandWidth[p] >= int32(nChannels) {
			bandMin[v] = int32(nChannels) - bandWidth[p]
		}
	}

	return model.BandMap{BandMin: bandMin, BandMax: bandMax}, bandWidth
}
