package model

// Fixed geometry constants from §6. LenPix is the number of samples in the
// pixel-profile table (resolution of the Detector-Pixel lookup); LenDet is
// the number of sub-elements the detector aperture is split into when
// convolving the wide-beam kernel against the pixel profile.
const (
	LenPix = 511
	LenDet = 101
)
