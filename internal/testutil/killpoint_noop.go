//go:build !crashtest

// Package testutil provides named kill points in the WAL write path.
// MaybeKill is a no-op that the compiler eliminates. This file is excluded
// under the "crashtest" build tag and the package has no other
// implementation of MaybeKill, so a build with that tag does not compile.
package testutil

// MaybeKill is a no-op in production builds.
func MaybeKill(_ string) {}

const (
	// KPWALAppend0 fires before a WAL append is written to the VFile.
	KPWALAppend0 = "WAL.Append:0"

	// KPWALSync0 fires before a WAL sync reaches the OS.
	KPWALSync0 = "WAL.Sync:0"

	// KPWALSync1 fires after a WAL sync completes, once data is durable.
	KPWALSync1 = "WAL.Sync:1"
)
