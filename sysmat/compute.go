// Package sysmat orchestrates the system-matrix construction pipeline:
// pixel-profile table, column builder, quantizer, super-voxel planner, band
// equalizer, and packer, producing the in-memory AStore that serialize
// persists. Voxel-column construction and per-SV band+pack work are
// parallelized across a bounded worker pool, following the rest of the
// pipeline's sequential dataflow (spec §5).
package sysmat

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dyang37/go-sysmat/forward"
	"github.com/dyang37/go-sysmat/model"
	"github.com/dyang37/go-sysmat/svband"
)

// ComputeA builds the packed system matrix for the given geometry. reconMask
// has length img.Nx*img.Ny; a false entry excludes that voxel from every
// super-voxel it would otherwise belong to. log may be the zero Logger
// (zerolog.Nop()) to suppress progress output.
func ComputeA(img model.ImageParams, sino model.SinoParams, sv model.SVParams, reconMask []bool, log zerolog.Logger) (model.AStore, error) {
	if sino.NViews%sv.PieceLength != 0 {
		return model.AStore{}, fmt.Errorf("%w: pieceLength %d does not divide NViews %d", model.ErrShape, sv.PieceLength, sino.NViews)
	}
	if len(reconMask) != img.Nx*img.Ny {
		return model.AStore{}, fmt.Errorf("%w: recon_mask length %d, want %d", model.ErrShape, len(reconMask), img.Nx*img.Ny)
	}

	origins := svband.Plan(img, sv)
	if len(origins) != sv.Nsv {
		return model.AStore{}, fmt.Errorf("%w: Nsv=%d but tiling produced %d origins", model.ErrShape, sv.Nsv, len(origins))
	}

	log.Info().Int("nx", img.Nx).Int("ny", img.Ny).Int("nviews", sino.NViews).
		Int("nchannels", sino.NChannels).Int("nsv", len(origins)).Msg("computing system matrix")

	columns, quantized, maxScale := buildColumns(img, sino, log)

	svband.ImputeSentinels(columns, sino.NChannels)

	svs := make([]model.ASV, len(origins))
	parallelFor(len(origins), func(i int) {
		origin := origins[i]
		members := svband.Members(origin, img, sv, reconMask, columns)
		band, _ := svband.EqualizeBand(members, columns, sino.NViews, sino.NChannels, sv.PieceLength)
		svs[i] = svband.PackSV(origin, members, img, sv, sino.NViews, columns, quantized, band)
	})

	log.Debug().Int("svs_packed", len(svs)).Msg("system matrix assembled")

	return model.AStore{SVs: svs, MaxScale: maxScale}, nil
}

// buildColumns runs the pixel-profile table and column builder over every
// voxel in the grid, quantizing each resulting column (§4.1-4.3). Voxels are
// independent of one another and are distributed across parallelFor.
func buildColumns(img model.ImageParams, sino model.SinoParams, log zerolog.Logger) ([]model.Column, [][]uint8, model.MaxScale) {
	ppt := forward.BuildPixelProfileTable(sino, img)
	b := forward.NewBuilder(img, sino, ppt)

	n := img.Nx * img.Ny
	columns := make([]model.Column, n)
	quantized := make([][]uint8, n)
	maxScale := make(model.MaxScale, n)

	parallelFor(n, func(idx int) {
		row := idx / img.Nx
		col := idx % img.Nx
		c, values := b.Column(row, col)
		q, m := forward.Quantize(values)
		columns[idx] = c
		quantized[idx] = q
		maxScale[idx] = m
	})

	log.Debug().Int("voxels", n).Msg("voxel columns built")
	return columns, quantized, maxScale
}

// parallelFor runs fn(i) for i in [0,n) across a bounded worker pool, each
// worker claiming the next index via an atomic counter. Blocks until every
// index has been processed.
func parallelFor(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= n {
					return
				}
				fn(i)
			}
		}()
	}
	wg.Wait()
}
