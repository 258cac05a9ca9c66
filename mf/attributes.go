// SPDX-License-Identifier: EPL-2.0

package mf

import (
	"fmt"
	"maps"
	"sync"
)

// Attribute keys.
const (
	// KeyContentType is the MIME type of a byte stream.
	KeyContentType = "bytestream.content-type"

	KeyMajorType         = "mt.major-type"
	KeySubtype           = "mt.subtype"
	KeyChannels          = "mt.audio.num-channels"
	KeySampleRate        = "mt.audio.samples-per-second"
	KeyBitsPerSample     = "mt.audio.bits-per-sample"
	KeyAvgBytesPerSecond = "mt.audio.avg-bytes-per-second"
	KeyBlockAlignment    = "mt.audio.block-alignment"
	KeySamplesPerBlock   = "mt.audio.samples-per-block"
	KeyChannelMask       = "mt.audio.channel-mask"

	// KeyDuration is the presentation duration in 100ns ticks (int64).
	KeyDuration = "pd.duration"
	// KeyTotalFileSize is the size of the source in bytes (uint64).
	KeyTotalFileSize = "pd.total-file-size"
)

// Attributes is a typed key/value store shared by byte streams, media types
// and presentation descriptors.
type Attributes struct {
	values map[string]any

	mtx *sync.Mutex
}

func NewAttributes() *Attributes {
	return &Attributes{
		values: make(map[string]any),
		mtx:    &sync.Mutex{},
	}
}

func (a *Attributes) set(key string, v any) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	a.values[key] = v
}

func (a *Attributes) get(key string) (any, bool) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	v, ok := a.values[key]
	return v, ok
}

func (a *Attributes) SetString(key, v string) { a.set(key, v) }

func (a *Attributes) SetUint32(key string, v uint32) { a.set(key, v) }

func (a *Attributes) SetUint64(key string, v uint64) { a.set(key, v) }

func (a *Attributes) SetInt64(key string, v int64) { a.set(key, v) }

// Value returns the raw value stored under key.
func (a *Attributes) Value(key string) (any, error) {
	v, ok := a.get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAttributeNotFound, key)
	}
	return v, nil
}

func (a *Attributes) String(key string) (string, error) {
	return getAs[string](a, key)
}

func (a *Attributes) Uint32(key string) (uint32, error) {
	return getAs[uint32](a, key)
}

func (a *Attributes) Uint64(key string) (uint64, error) {
	return getAs[uint64](a, key)
}

func (a *Attributes) Int64(key string) (int64, error) {
	return getAs[int64](a, key)
}

// Uint32Or returns the uint32 under key, or def when it is missing or has
// another type.
func (a *Attributes) Uint32Or(key string, def uint32) uint32 {
	v, err := a.Uint32(key)
	if err != nil {
		return def
	}
	return v
}

// Has reports whether key is set.
func (a *Attributes) Has(key string) bool {
	_, ok := a.get(key)
	return ok
}

// Len is the number of stored keys.
func (a *Attributes) Len() int {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	return len(a.values)
}

// CopyAllItems copies every attribute into dst, overwriting existing keys.
func (a *Attributes) CopyAllItems(dst *Attributes) {
	a.mtx.Lock()
	snapshot := maps.Clone(a.values)
	a.mtx.Unlock()

	for k, v := range snapshot {
		dst.set(k, v)
	}
}

func getAs[T any](a *Attributes, key string) (T, error) {
	var zero T

	v, ok := a.get(key)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrAttributeNotFound, key)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s holds %T", ErrAttributeType, key, v)
	}
	return t, nil
}
