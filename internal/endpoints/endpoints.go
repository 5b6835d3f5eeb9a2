// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package endpoints

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/socctl/socctl/internal/fetch"
	"github.com/socctl/socctl/internal/log"
)

// DefaultURL is the published Office 365 worldwide endpoints API.
const DefaultURL = "https://endpoints.office.com/endpoints/worldwide"

// Set is one endpoint set record from the worldwide endpoints payload,
// reduced to the fields the ips command reports.
type Set struct {
	ID          int64
	ServiceArea string
	Category    string
	Required    bool
	Subnets     []string
}

// RequestURL appends the per-run clientrequestid the endpoints API requires.
func RequestURL(base string) string {
	return fmt.Sprintf("%s?clientrequestid=%s", base, uuid.NewString())
}

// Fetch retrieves the worldwide endpoints list and returns the sets matching
// serviceArea, in source order.
func Fetch(ctx context.Context, base, serviceArea string) ([]Set, error) {
	url := RequestURL(base)

	resp, err := fetch.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("endpoints request failed: status %d", resp.StatusCode)
	}

	sets := Parse(resp.Body, serviceArea)
	log.Debugf("endpoints fetched: serviceArea=%s sets=%d", serviceArea, len(sets))

	return sets, nil
}

// Parse filters the endpoints payload down to the sets for one service area.
// A record without an ips key contributes an empty subnet list, not an error.
func Parse(doc []byte, serviceArea string) []Set {
	var sets []Set

	for _, rec := range gjson.ParseBytes(doc).Array() {
		if rec.Get("serviceArea").String() != serviceArea {
			continue
		}

		set := Set{
			ID:          rec.Get("id").Int(),
			ServiceArea: serviceArea,
			Category:    rec.Get("category").String(),
			Required:    rec.Get("required").Bool(),
		}
		for _, ip := range rec.Get("ips").Array() {
			set.Subnets = append(set.Subnets, ip.String())
		}

		sets = append(sets, set)
	}

	return sets
}

// Subnets flattens the subnet lists of all sets, preserving order.
func Subnets(sets []Set) []string {
	var subnets []string
	for _, set := range sets {
		subnets = append(subnets, set.Subnets...)
	}
	return subnets
}
