// Package serialize persists and loads a packed system matrix (AStore) using
// the fixed binary layout of spec §6: per-SV bandMin/bandMax, per-slot
// length-prefixed voxel payloads, and a trailing MaxScale array. All fields
// are little-endian, matching the source platform.
package serialize

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/dyang37/go-sysmat/model"
)

// Write persists store to path in the §6 layout. A pre-existing file at path
// is truncated.
func Write(path string, store model.AStore) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrIO, path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeStore(w, store); err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrIO, path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrIO, path, err)
	}
	return nil
}

func writeStore(w io.Writer, store model.AStore) error {
	for _, sv := range store.SVs {
		if err := binary.Write(w, binary.LittleEndian, sv.Band.BandMin); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, sv.Band.BandMax); err != nil {
			return err
		}
		for _, voxel := range sv.Voxels {
			if err := binary.Write(w, binary.LittleEndian, int32(voxel.Length)); err != nil {
				return err
			}
			if voxel.Length <= 0 {
				continue
			}
			if err := binary.Write(w, binary.LittleEndian, voxel.Val); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, voxel.PieceWiseMin); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, voxel.PieceWiseWidth); err != nil {
				return err
			}
		}
	}
	return binary.Write(w, binary.LittleEndian, []float32(store.MaxScale))
}

// Shape describes the geometry needed to size buffers on read: Nsv and the
// per-SV slot count are derived by the caller from ImageParams/SinoParams/
// SVParams (the same parameters that produced the store being read), since
// the file itself carries no header.
type Shape struct {
	Nsv        int
	SlotsPerSV int
	NViews     int
	NPieces    int
	NVoxels    int // Nx * Ny, length of the trailing MaxScale array
}

// Read loads a packed system matrix from path. shape must describe the same
// geometry the file was written with; the layout carries no self-describing
// header, so a mismatched shape produces an IOError (short read) or a
// silently corrupt store rather than a clean failure.
func Read(path string, shape Shape) (model.AStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.AStore{}, fmt.Errorf("%w: %s: %v", model.ErrIO, path, err)
	}
	defer f.Close()

	store, err := readStore(bufio.NewReader(f), shape)
	if err != nil {
		return model.AStore{}, fmt.Errorf("%w: %s: %v", model.ErrIO, path, err)
	}
	return store, nil
}

func readStore(r io.Reader, shape Shape) (model.AStore, error) {
	svs := make([]model.ASV, shape.Nsv)
	for s := 0; s < shape.Nsv; s++ {
		bandMin := make([]int32, shape.NViews)
		bandMax := make([]int32, shape.NViews)
		if err := binary.Read(r, binary.LittleEndian, bandMin); err != nil {
			return model.AStore{}, err
		}
		if err := binary.Read(r, binary.LittleEndian, bandMax); err != nil {
			return model.AStore{}, err
		}

		voxels := make([]model.PaddedVoxel, shape.SlotsPerSV)
		for v := 0; v < shape.SlotsPerSV; v++ {
			var length int32
			if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
				return model.AStore{}, err
			}
			if length <= 0 {
				continue
			}
			val := make([]uint8, length)
			if err := binary.Read(r, binary.LittleEndian, val); err != nil {
				return model.AStore{}, err
			}
			pwMin := make([]int32, shape.NPieces)
			if err := binary.Read(r, binary.LittleEndian, pwMin); err != nil {
				return model.AStore{}, err
			}
			pwWidth := make([]int32, shape.NPieces)
			if err := binary.Read(r, binary.LittleEndian, pwWidth); err != nil {
				return model.AStore{}, err
			}
			voxels[v] = model.PaddedVoxel{
				Length:         int(length),
				Val:            val,
				PieceWiseMin:   pwMin,
				PieceWiseWidth: pwWidth,
			}
		}
		svs[s] = model.ASV{Band: model.BandMap{BandMin: bandMin, BandMax: bandMax}, Voxels: voxels}
	}

	maxScale := make(model.MaxScale, shape.NVoxels)
	if err := binary.Read(r, binary.LittleEndian, []float32(maxScale)); err != nil {
		return model.AStore{}, err
	}
	return model.AStore{SVs: svs, MaxScale: maxScale}, nil
}
