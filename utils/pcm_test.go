// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestPCMSample_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		values   []int
	}{
		{"8-bit", 8, []int{0, 1, -1, 127, -128}},
		{"16-bit", 16, []int{0, 1, -1, math.MaxInt16, math.MinInt16}},
		{"24-bit", 24, []int{0, 1, -1, 1<<23 - 1, -1 << 23}},
		{"32-bit", 32, []int{0, 1, -1, math.MaxInt32, math.MinInt32}},
	}

	for _, tt := range tests {
		buf := make([]byte, BytesPerSample(tt.bitDepth))
		for _, v := range tt.values {
			PutPCM(buf, v, tt.bitDepth)
			if got := PCMSample(buf, tt.bitDepth); got != v {
				t.Errorf("%s: PCMSample(PutPCM(%d)) = %d", tt.name, v, got)
			}
		}
	}
}

func TestPutPCM_EightBitIsUnsigned(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 1)

	PutPCM(buf, 0, 8)
	if buf[0] != 128 {
		t.Errorf("PutPCM(0, 8) = %d, want 128", buf[0])
	}

	PutPCM(buf, -128, 8)
	if buf[0] != 0 {
		t.Errorf("PutPCM(-128, 8) = %d, want 0", buf[0])
	}
}

func TestPCMToFloat32(t *testing.T) {
	t.Parallel()

	src := make([]byte, 8)
	PutPCM(src[0:], 0, 16)
	PutPCM(src[2:], 16384, 16)
	PutPCM(src[4:], -32768, 16)
	PutPCM(src[6:], -16384, 16)

	dst := make([]float32, 8)
	n := PCMToFloat32(dst, append(src, 0x01), 16)
	if n != 4 {
		t.Fatalf("PCMToFloat32() = %d, want 4", n)
	}

	want := []float32{0, 0.5, -1, -0.5}
	for i, w := range want {
		if dst[i] != w {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], w)
		}
	}
}

func TestPCMToFloat32_ShortDst(t *testing.T) {
	t.Parallel()

	src := make([]byte, 12)
	dst := make([]float32, 2)
	if n := PCMToFloat32(dst, src, 24); n != 2 {
		t.Errorf("PCMToFloat32() = %d, want 2", n)
	}
}

func TestBytesPerSample(t *testing.T) {
	t.Parallel()

	for depth, want := range map[int]int{8: 1, 12: 2, 16: 2, 20: 3, 24: 3, 32: 4} {
		if got := BytesPerSample(depth); got != want {
			t.Errorf("BytesPerSample(%d) = %d, want %d", depth, got, want)
		}
	}
}
