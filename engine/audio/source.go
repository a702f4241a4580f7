// Package audio is the boundary to whatever produces the byte spectrum the
// particles react to.
package audio

// FrequencySource fills buf with byte magnitudes, one per frequency bin,
// 0 silent and 255 loudest. It returns false when no fresh data was written,
// buf is then left untouched.
type FrequencySource interface {
	ByteFrequencyData(buf []uint8) bool
}

// Silence never has data, the spectrum keeps whatever it held.
type Silence struct{}

func (Silence) ByteFrequencyData(buf []uint8) bool {
	return false
}

// Static reports the same spectrum on every call. Bins beyond the slice
// read as zero.
type Static []uint8

func (s Static) ByteFrequencyData(buf []uint8) bool {
	n := copy(buf, s)
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	return true
}
