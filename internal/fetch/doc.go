// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package fetch wraps HTTP GETs with a bounded retry ceiling and exponential
// backoff.
package fetch
