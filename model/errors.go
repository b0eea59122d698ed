// Package model defines the shared data types that flow between the
// system-matrix construction stages (pixel profile, column builder,
// quantizer, super-voxel planner, band equalizer, packer, serializer).
package model

import "errors"

var (
	// ErrShape indicates a geometry/parameter mismatch: pieceLength does not
	// divide NViews, Nsv disagrees with the super-voxel tiling walk, a
	// reconstruction mask has the wrong length, or a geometry file cannot be
	// decoded.
	ErrShape = errors.New("sysmat: shape error")

	// ErrIO indicates a file open, short read, or short write while
	// persisting or loading a packed system matrix.
	ErrIO = errors.New("sysmat: io error")
)
