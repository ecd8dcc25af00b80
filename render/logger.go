// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"log/slog"

	"github.com/gogpu/g3d"
)

// slogger returns the logger shared with the root package.
// All logging in render goes through this function.
func slogger() *slog.Logger { return g3d.Logger() }
