// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

// Package query parses URL query parameter values into Go slices.
// Malformed entries are skipped rather than surfaced as errors.
package query

import (
	"strconv"
	"strings"
)

// IntSlice parses repeated query values into a slice of integers.
// Entries that fail to parse are dropped.
func IntSlice(vals []string) []int {
	var res []int
	for _, v := range vals {
		if i, err := strconv.Atoi(v); err == nil {
			res = append(res, i)
		}
	}
	return res
}

// StringSlice splits a comma-separated query value into trimmed,
// non-empty strings. Returns nil for an empty input.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
