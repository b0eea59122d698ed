package svband

import "github.com/dyang37/go-sysmat/model"

// PackVoxel builds the padded, piece-transposed storage for one member
// voxel (§4.6). quantized is that voxel's dense quantized value buffer in
// view-major channel order, as produced by forward.Quantize.
func PackVoxel(col *model.Column, quantized []uint8, band model.BandMap, pieceLen, nViews int) model.PaddedVoxel {
	nPieces := nViews / pieceLen

	pwMin := make([]int32, nPieces)
	pwMax := make([]int32, nPieces)
	pwWidth := make([]int32, nPieces)

	for p := 0; p < nPieces; p++ {
		base := p * pieceLen
		min0 := int32(col.MinIndex[base]) - band.BandMin[base]
		max0 := min0 + int32(col.CountTheta[base])
		for t := 1; t < pieceLen; t++ {
			v := base + t
			idx0 := int32(col.MinIndex[v]) - band.BandMin[v]
			idx1 := int32(col.CountTheta[v])
			if idx0 < min0 {
				min0 = idx0
			}
			if max0 < idx0+idx1 {
				max0 = idx0 + idx1
			}
		}
		pwMin[p] = min0
		pwMax[p] = max0
		pwWidth[p] = max0 - min0
	}

	total := 0
	for _, w := range pwWidth {
		total += int(w) * pieceLen
	}

	padded := make([]uint8, total)
	cursor := 0
	srcOff := 0
	for v := 0; v < nViews; v++ {
		p := v / pieceLen
		leadZeros := int(col.MinIndex[v]) - int(pwMin[p]) - int(band.BandMin[v])
		for t := 0; t < leadZeros; t++ {
			padded[cursor] = 0
			cursor++
		}
		n := col.CountTheta[v]
		copy(padded[cursor:cursor+n], quantized[srcOff:srcOff+n])
		cursor += n
		srcOff += n
		trailZeros := int(pwMax[p]) - (int(col.MinIndex[v]) - int(band.BandMin[v])) - n
		for t := 0; t < trailZeros; t++ {
			padded[cursor] = 0
			cursor++
		}
	}

	transposed := make([]uint8, total)
	srcCursor := 0
	dstCursor := 0
	for p := 0; p < nPieces; p++ {
		w := int(pwWidth[p])
		for q := 0; q < w; q++ {
			for t := 0; t < pieceLen; t++ {
				transposed[dstCursor+q*pieceLen+t] = padded[srcCursor+t*w+q]
			}
		}
		srcCursor += w * pieceLen
		dstCursor += w * pieceLen
	}

	return model.PaddedVoxel{
		Length:         total,
		Val:            transposed,
		PieceWiseMin:   pwMin,
		PieceWiseWidth: pwWidth,
	}
}

// PackSV assembles one super-voxel's full bundle: its band map plus a
// (2*SVLength+1)^2-slot voxel grid, with non-member slots left at the zero
// value (Length==0, nil data).
func PackSV(origin int, members []int, img model.ImageParams, sv model.SVParams, nViews int, columns []model.Column, quantized [][]uint8, band model.BandMap) model.ASV {
	voxels := make([]model.PaddedVoxel, sv.SVSide()*sv.SVSide())
	for _, idx := range members {
		slot := SlotOf(idx, origin, img, sv)
		voxels[slot] = PackVoxel(&columns[idx], quantized[idx], band, sv.PieceLength, nViews)
	}
	return model.ASV{Band: band, Voxels: voxels}
}
