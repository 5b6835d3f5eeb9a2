// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package sigma clones the SigmaHQ rules repository and parses its rule files
// into tabular rows.
package sigma
