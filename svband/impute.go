package svband

import "github.com/dyang37/go-sysmat/model"

// ImputeSentinels fills in minIndex for empty-view entries of SV member
// voxels (§4.5 step 1). A column entry with countTheta[v]==0 carries one of
// two sentinel values for minIndex[v]: 0 (never set) or nChannels-1
// (clipped at the far end). Both are treated as "missing" and replaced by
// inheritance from the nearest prior view; for v==0 the source scans
// forward to the first view not carrying that sentinel.
//
// A voxel whose column is entirely empty (NIndex==0, every view's
// minIndex stuck on a sentinel) is never imputed — it was never retained
// as an SV member in the first place (Members filters out NIndex<=0), so
// there is nothing to inherit from and the forward scan would run off the
// end of MinIndex.
//
// This mutates columns in place and must run once, globally, before any
// super-voxel reads minIndex; concurrent SV-level band equalization must not
// race with it (see §5, "Shared mutable state"). A second pass is not
// guaranteed to be a no-op: an empty view imputed to nChannels-1 reads as a
// sentinel again and can be re-imputed.
func ImputeSentinels(columns []model.Column, nChannels int) {
	for i := range columns {
		col := &columns[i]
		if col.NIndex == 0 {
			continue
		}
		for v := 0; v < len(col.MinIndex); v++ {
			if col.CountTheta[v] != 0 {
				continue
			}
			switch col.MinIndex[v] {
			case 0:
				imputeSentinel(col, v, 0)
			case nChannels - 1:
				imputeSentinel(col, v, nChannels-1)
			}
		}
	}
}

func imputeSentinel(col *model.Column, v, sentinel int) {
	if v != 0 {
		col.MinIndex[v] = col.MinIndex[v-1]
		return
	}
	k := 0
	for k < len(col.MinIndex) && col.MinIndex[k] == sentinel {
		k++
	}
	if k >= len(col.MinIndex) {
		return
	}
	col.MinIndex[0] = col.MinIndex[k]
}
