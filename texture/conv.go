// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hmap

package texture

import "math"

// i32FromInt converts a non-negative int to an int32 block size.
func i32FromInt(n int) (int32, error) {
	if n < 0 || n > math.MaxInt32 {
		return 0, ErrSizeOverflow
	}

	// #nosec G115 -- bounds checked above.
	return int32(n), nil
}

// u32FromInt converts an int to a uint32.
func u32FromInt(n int) (uint32, error) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return 0, ErrSizeOverflow
	}

	// #nosec G115 -- bounds checked above.
	return uint32(n), nil
}
