package signal

import "math"

// Log-distance path-loss model constants. The AP antennas sit 10 m above
// the device plane, so the propagation distance includes a fixed vertical
// offset.
const (
	pathGainOffsetDB = 94.0
	pathLossRefDB    = 30.5
	pathLossExpCoef  = 36.7
	apHeight         = 10.0
)

// ChannelGain returns the average (large-scale) channel gain in linear scale
// for a device at horizontal distance d from an AP.
func ChannelGain(d float64) float64 {
	d3 := math.Sqrt(d*d + apHeight*apHeight)
	gainDB := pathGainOffsetDB - pathLossRefDB - pathLossExpCoef*math.Log10(d3)
	return DbToLinear(gainDB)
}

func DbToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}

func LinearToDb(lin float64) float64 {
	return 10 * math.Log10(lin)
}
