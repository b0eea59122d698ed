package forward

import (
	"math"

	"github.com/dyang37/go-sysmat/model"
)

// Builder computes per-voxel projection columns against a pixel-profile
// table convolved with a detector aperture. Geometry constants and the
// detector kernel are derived once per Builder instead of cached in
// process-wide state, so they track whatever NChannels/DeltaChannel/
// CenterOffset/Nx/Ny/Deltaxy the caller configured for this computeA run
// (see §9, "Global first-call cache").
type Builder struct {
	img  model.ImageParams
	sino model.SinoParams
	ppt  *PixelProfileTable

	t0    float64
	x0    float64
	y0    float64
	dprof [model.LenDet]float64
}

// NewBuilder constructs a column Builder for one computeA invocation.
func NewBuilder(img model.ImageParams, sino model.SinoParams, ppt *PixelProfileTable) *Builder {
	b := &Builder{
		img:  img,
		sino: sino,
		ppt:  ppt,
		t0:   -float64(sino.NChannels-1)*sino.DeltaChannel/2.0 - sino.CenterOffset*sino.DeltaChannel,
		x0:   -float64(img.Nx-1) * img.Deltaxy / 2.0,
		y0:   -float64(img.Ny-1) * img.Deltaxy / 2.0,
	}
	// Uniform square detector aperture, weight 1/LenDet, sums to 1.
	for k := 0; k < model.LenDet; k++ {
		b.dprof[k] = 1.0 / float64(model.LenDet)
	}
	return b
}

// Column computes the sparse column for voxel (row, col): a model.Column
// descriptor plus the dense buffer of contributing float values in scan
// order (view outer, channel inner). See §4.2.
func (b *Builder) Column(row, col int) (model.Column, []float64) {
	nViews := b.sino.NViews
	nChannels := b.sino.NChannels
	deltaChannel := b.sino.DeltaChannel
	deltaxy := b.img.Deltaxy

	y := b.y0 + float64(row)*deltaxy
	x := b.x0 + float64(col)*deltaxy

	column := model.Column{
		CountTheta: make([]int, nViews),
		MinIndex:   make([]int, nViews),
	}
	values := make([]float64, 0, nViews)

	for v := 0; v < nViews; v++ {
		ang := b.sino.ViewAngles[v]
		s := y*math.Cos(ang) - x*math.Sin(ang)

		tMin := s - deltaxy
		tMax := s + deltaxy

		if tMax < b.t0 {
			column.CountTheta[v] = 0
			column.MinIndex[v] = 0
			continue
		}

		indMin := int(math.Ceil((tMin - b.t0) / deltaChannel - 0.5))
		indMax := int((tMax-b.t0)/deltaChannel + 0.5)

		if indMin < 0 {
			indMin = 0
		}
		if indMax >= nChannels {
			indMax = nChannels - 1
		}

		const1 := b.t0 - deltaChannel/2.0
		const2 := deltaChannel / float64(model.LenDet-1)
		const3 := deltaxy - s
		const4 := float64(model.LenPix-1) / (2.0 * deltaxy)

		write := true
		minIdx := 0
		count := 0

		for c := indMin; c <= indMax; c++ {
			var aval float64
			for k := 0; k < model.LenDet; k++ {
				t := const1 + float64(c)*deltaChannel + float64(k)*const2
				idx := int((t+const3)*const4 + 0.5)
				aval += b.dprof[k] * float64(b.ppt.lookup(v, idx))
			}
			if aval > 0 {
				if write {
					minIdx = c
					write = false
				}
				values = append(values, aval)
				count++
			}
		}

		column.CountTheta[v] = count
		column.MinIndex[v] = minIdx
	}

	column.NIndex = len(values)
	return column, values
}
