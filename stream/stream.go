// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"io"
	"time"
)

// Stream is the full random-access stream capability set the platform
// framework expects. Operations that make no sense for a forwarding,
// read-only stream are still present and answer with a fixed result.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker

	// AddRef takes a shared reference and returns the new count.
	AddRef() int32
	// Release drops a reference and returns the remaining count. The stream
	// is unusable once the count reaches zero.
	Release() int32

	SetSize(size uint64) error
	CopyTo(dst io.Writer, n uint64) (read, written uint64, err error)
	Commit(flags uint32) error
	Revert() error
	LockRegion(offset, size uint64, lockType LockType) error
	UnlockRegion(offset, size uint64, lockType LockType) error
	Stat(flag StatFlag) (Stat, error)
	Clone() (Stream, error)
}

// StorageType classifies the object a Stat describes.
type StorageType int

const (
	StorageStorage StorageType = iota + 1
	StorageStream
	StorageLockBytes
	StorageProperty
)

// AccessMode is the access a stream was opened with.
type AccessMode uint32

const (
	AccessRead      AccessMode = 0x00000000
	AccessWrite     AccessMode = 0x00000001
	AccessReadWrite AccessMode = 0x00000002
)

// StatFlag controls which Stat fields are filled.
type StatFlag uint32

const (
	StatFlagDefault StatFlag = 0
	// StatFlagNoName leaves Stat.Name empty.
	StatFlagNoName StatFlag = 1
)

// LockType selects the byte-range lock kind.
type LockType uint32

const (
	LockWrite     LockType = 1
	LockExclusive LockType = 2
	LockOnlyOnce  LockType = 4
)

// Stat describes a stream.
type Stat struct {
	Name           string
	Type           StorageType
	Size           uint64
	ModTime        time.Time
	CreateTime     time.Time
	AccessTime     time.Time
	Mode           AccessMode
	LocksSupported LockType
}
