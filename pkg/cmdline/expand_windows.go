// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package cmdline

func expandEnvironment(s string, lookup func(string) (string, bool)) string {
	return expandPercent(s, lookup)
}
