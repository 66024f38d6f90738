//go:build plocbvh_debug

package plocbvh

const debugAssertions = true
