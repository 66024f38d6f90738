//go:build !plocbvh_debug

package plocbvh

// debugAssertions is false in ordinary builds. Build with the
// plocbvh_debug tag (go build -tags plocbvh_debug) to turn on the
// input-sanitation panics described in SPEC_FULL.md's error-handling
// section; this mirrors the original's debug_assert! convention, which
// is compiled away entirely outside of debug builds.
const debugAssertions = false
