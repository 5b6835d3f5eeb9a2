// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package stix loads MITRE ATT&CK STIX bundles into immutable in-memory
// snapshots keyed by object id.
package stix
