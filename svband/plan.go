// Package svband tiles the image grid into overlapping super-voxels,
// equalizes their per-view detector bands over contiguous pieces of views,
// and packs each member voxel's quantized column into the padded,
// transposed layout the outer solver consumes.
package svband

import "github.com/dyang37/go-sysmat/model"

// Plan walks the image grid with stride 2*SVLength-overlap in each axis and
// returns the flat row-major voxel index (row*Nx+col) of each super-voxel's
// origin, in enumeration order (§4.4). The caller's sv.Nsv must equal
// len(result); callers should treat a mismatch as a shape error.
func Plan(img model.ImageParams, sv model.SVParams) []int {
	stride := 2*sv.SVLength - sv.Overlap
	origins := make([]int, 0, sv.Nsv)
	for i := 0; i < img.Ny; i += stride {
		for j := 0; j < img.Nx; j += stride {
			origins = append(origins, i*img.Nx+j)
		}
	}
	return origins
}

// Members enumerates the voxels retained by the super-voxel rooted at
// origin: those in the (2*SVLength+1)^2 candidate window that are in
// bounds, truthy in mask, and have a non-empty column. Returned as flat
// row-major voxel indices (row*Nx+col), in row-major enumeration order.
func Members(origin int, img model.ImageParams, sv model.SVParams, mask []bool, columns []model.Column) []int {
	jy := origin / img.Nx
	jx := origin % img.Nx

	members := make([]int, 0, sv.SVSide()*sv.SVSide())
	for r := jy; r <= jy+2*sv.SVLength; r++ {
		if r < 0 || r >= img.Ny {
			continue
		}
		for c := jx; c <= jx+2*sv.SVLength; c++ {
			if c < 0 || c >= img.Nx {
				continue
			}
			idx := r*img.Nx + c
			if !mask[idx] {
				continue
			}
			if columns[idx].NIndex <= 0 {
				continue
			}
			members = append(members, idx)
		}
	}
	return members
}

// SlotOf returns a member voxel's position within the super-voxel's
// (2*SVLength+1)^2 linearized voxel grid (§4.6).
func SlotOf(memberIdx, origin int, img model.ImageParams, sv model.SVParams) int {
	jy := origin / img.Nx
	jx := origin % img.Nx
	r := memberIdx / img.Nx
	c := memberIdx % img.Nx
	return (r-jy)*sv.SVSide() + (c - jx)
}
