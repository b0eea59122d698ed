package model

// ImageParams describes the slice-invariant 2-D voxel grid.
type ImageParams struct {
	Nx      int     `json:"nx" yaml:"nx"`           // voxel columns
	Ny      int     `json:"ny" yaml:"ny"`           // voxel rows
	Deltaxy float64 `json:"deltaxy" yaml:"deltaxy"` // voxel side length
}

// SinoParams describes the sinogram (view angle x detector channel) geometry.
type SinoParams struct {
	NViews       int       `json:"n_views" yaml:"n_views"`
	NChannels    int       `json:"n_channels" yaml:"n_channels"`
	DeltaChannel float64   `json:"delta_channel" yaml:"delta_channel"`
	CenterOffset float64   `json:"center_offset" yaml:"center_offset"`
	ViewAngles   []float64 `json:"view_angles" yaml:"view_angles"` // radians, length NViews
}

// SVParams configures the super-voxel tiling and packed-band pieces.
//
// SVLength is the SV half-width: a super-voxel spans (2*SVLength+1)^2
// voxels. Overlap is how much adjacent SVs share along each axis. Nsv is
// caller-provided and must equal the number of origins the tiling walk of
// §4.4 produces. PieceLength must evenly divide NViews.
type SVParams struct {
	SVLength    int `json:"sv_length" yaml:"sv_length"`
	Overlap     int `json:"overlap" yaml:"overlap"`
	PieceLength int `json:"piece_length" yaml:"piece_length"`
	Nsv         int `json:"nsv" yaml:"nsv"`
}

// SVSide returns the voxel side length of a super-voxel, 2*SVLength+1.
func (p SVParams) SVSide() int {
	return 2*p.SVLength + 1
}

// Column is the sparse per-voxel projection column built by the column
// builder. CountTheta[v] is the number of contributing channels in view v;
// MinIndex[v] is the first contributing channel in view v (or an imputed
// value once the band equalizer has run — see §4.5).
type Column struct {
	NIndex     int
	CountTheta []int // length NViews
	MinIndex   []int // length NViews
}

// ColumnVals holds the quantized values for one voxel, packed view-major in
// channel order, length NIndex.
type ColumnVals struct {
	Val []uint8
}

// MaxScale is the per-voxel float max used for quantization, one entry per
// voxel, indexed row*Nx+col.
type MaxScale []float32

// BandMap is a single super-voxel's per-view detector band.
type BandMap struct {
	BandMin []int32 // length NViews
	BandMax []int32 // length NViews
}

// PaddedVoxel is the final packed storage for one voxel-within-SV slot. A
// voxel that was not retained by the super-voxel planner (out of bounds,
// outside the mask, or an empty column) occupies a slot with Length==0 and
// nil slices.
type PaddedVoxel struct {
	Length         int
	Val            []uint8
	PieceWiseMin   []int32 // length NViews/PieceLength
	PieceWiseWidth []int32 // length NViews/PieceLength
}

// ASV is one super-voxel's full packed bundle: its band map plus
// (2*SVLength+1)^2 padded voxels, linearized (r-jy)*(2*SVLength+1)+(c-jx).
type ASV struct {
	Band   BandMap
	Voxels []PaddedVoxel
}

// AStore is the in-memory packed system matrix: one ASV per super-voxel
// plus the flat per-voxel MaxScale array.
type AStore struct {
	SVs      []ASV
	MaxScale MaxScale
}
