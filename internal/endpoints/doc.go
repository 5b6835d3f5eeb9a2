// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package endpoints fetches and filters the Office 365 worldwide endpoints
// list.
package endpoints
