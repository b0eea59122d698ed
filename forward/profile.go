// Package forward computes the sparse per-voxel projection column: the
// pixel-profile table, the detector-convolved footprint, and the 8-bit
// quantization of the resulting float values.
package forward

import (
	"math"

	"github.com/dyang37/go-sysmat/model"
)

// PixelProfileTable holds, per view angle, the 1-D trapezoidal footprint of
// a unit pixel sampled at model.LenPix displacements over t in [0,2).
type PixelProfileTable struct {
	rows [][model.LenPix]float32
}

// BuildPixelProfileTable precomputes the trapezoidal pixel-profile for every
// view angle (§4.1). The angle is reduced modulo pi/2 into [0, pi/2).
func BuildPixelProfileTable(sino model.SinoParams, img model.ImageParams) *PixelProfileTable {
	t := &PixelProfileTable{rows: make([][model.LenPix]float32, sino.NViews)}

	const halfPi = math.Pi / 2
	rc := math.Sin(math.Pi / 4)

	for i := 0; i < sino.NViews; i++ {
		ang := sino.ViewAngles[i]
		for ang >= halfPi {
			ang -= halfPi
		}
		for ang < 0 {
			ang += halfPi
		}

		var maxval float64
		if ang <= math.Pi/4 {
			maxval = img.Deltaxy / math.Cos(ang)
		} else {
			maxval = img.Deltaxy / math.Cos(halfPi-ang)
		}

		d1 := rc * math.Cos(math.Pi/4-ang)
		d2 := rc * math.Abs(math.Sin(math.Pi/4-ang))

		t1 := 1.0 - d1
		t2 := 1.0 - d2
		t3 := 1.0 + d2
		t4 := 1.0 + d1

		for j := 0; j < model.LenPix; j++ {
			tt := 2.0 * float64(j) / float64(model.LenPix)
			var v float64
			switch {
			case tt <= t1 || tt > t4:
				v = 0
			case tt <= t2:
				v = maxval * (tt - t1) / (t2 - t1)
			case tt <= t3:
				v = maxval
			default:
				v = maxval * (t4 - tt) / (t4 - t3)
			}
			t.rows[i][j] = float32(v)
		}
	}

	return t
}

// lookup returns PPT[view][idx], or 0 if idx is out of [0, LenPix).
func (t *PixelProfileTable) lookup(view, idx int) float32 {
	if idx < 0 || idx >= model.LenPix {
		return 0
	}
	return t.rows[view][idx]
}
