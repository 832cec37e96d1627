// Package conv provides checked integer conversions for the snapshot format,
// which stores counts and lengths as fixed-width unsigned integers.
package conv
