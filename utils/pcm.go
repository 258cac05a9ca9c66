// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// BytesPerSample for a PCM bit depth, rounded up to whole bytes.
func BytesPerSample(bitDepth int) int {
	return (bitDepth + 7) / 8
}

// PutPCM writes the signed sample v as little-endian PCM of bitDepth bits.
// 8-bit PCM is unsigned with a 128 offset.
func PutPCM(dst []byte, v int, bitDepth int) {
	switch bitDepth {
	case 8:
		dst[0] = byte(v + 128)
	case 16:
		binary.LittleEndian.PutUint16(dst, uint16(int16(v)))
	case 24:
		dst[0] = byte(v)
		dst[1] = byte(v >> 8)
		dst[2] = byte(v >> 16)
	case 32:
		binary.LittleEndian.PutUint32(dst, uint32(int32(v)))
	}
}

// PCMSample reads one little-endian sample of bitDepth bits as a signed value.
func PCMSample(src []byte, bitDepth int) int {
	switch bitDepth {
	case 8:
		return int(src[0]) - 128
	case 16:
		return int(int16(binary.LittleEndian.Uint16(src)))
	case 24:
		v := int32(src[0]) | int32(src[1])<<8 | int32(src[2])<<16
		// sign extend
		return int(v<<8) >> 8
	case 32:
		return int(int32(binary.LittleEndian.Uint32(src)))
	}
	return 0
}

// PCMToFloat32 decodes PCM bytes into dst as floats in [-1,1] and returns
// the number of samples written. Trailing partial samples are ignored.
func PCMToFloat32(dst []float32, src []byte, bitDepth int) int {
	size := BytesPerSample(bitDepth)
	if size == 0 {
		return 0
	}

	scale := float32(int64(1) << (bitDepth - 1))
	n := min(len(dst), len(src)/size)
	for i := range n {
		dst[i] = float32(PCMSample(src[i*size:], bitDepth)) / scale
	}
	return n
}
