package sysmat

import (
	"github.com/dyang37/go-sysmat/model"
	"github.com/dyang37/go-sysmat/serialize"
)

// WriteA persists store to path using the §6 binary layout.
func WriteA(path string, store model.AStore) error {
	return serialize.Write(path, store)
}

// ReadA loads a packed system matrix from path. img, sino, and sv must be
// the same parameters ComputeA was called with when the file was written —
// the layout carries no self-describing header.
func ReadA(path string, img model.ImageParams, sino model.SinoParams, sv model.SVParams) (model.AStore, error) {
	shape := serialize.Shape{
		Nsv:        sv.Nsv,
		SlotsPerSV: sv.SVSide() * sv.SVSide(),
		NViews:     sino.NViews,
		NPieces:    sino.NViews / sv.PieceLength,
		NVoxels:    img.Nx * img.Ny,
	}
	return serialize.Read(path, shape)
}
