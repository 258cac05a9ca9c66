// SPDX-License-Identifier: EPL-2.0

// Package timeconv converts between the platform framework's 100ns ticks
// and the host's millisecond, PCM frame and PCM byte units.
//
// Conversions truncate, so a round trip can lose up to one unit:
//
//	f := timeconv.Format{Channels: 2, BitsPerSample: 16, AvgBytesPerSecond: 176400}
//	frames, _ := timeconv.FromTicks(ticks, host.TimeUnitPCM, f)
//	back, _ := timeconv.ToTicks(frames, host.TimeUnitPCM, f) // back <= ticks
package timeconv
