/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"encoding/json"
	"fmt"

	"bennypowers.dev/mishtanim/token"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// parseFlat decodes a flat {title, description, items} document.
// JSON and JSONC documents are stripped of comments first; YAML decodes
// directly, with values normalized to JSON-style types afterwards.
func parseFlat(data []byte) ([]*token.Set, error) {
	var set token.Set
	if isLikelyJSON(data) {
		if err := json.Unmarshal(jsonc.ToJSON(data), &set); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	for i, item := range set.Items {
		set.Items[i].Value = normalize(item.Value)
	}
	return []*token.Set{&set}, nil
}
