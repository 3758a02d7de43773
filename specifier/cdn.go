/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"fmt"
	"strings"
)

// CDN identifies the content delivery network used to fetch package
// specifiers that are not installed locally.
type CDN string

const (
	// CDNUnpkg fetches npm packages from unpkg.com (default).
	CDNUnpkg CDN = "unpkg"

	// CDNEsmSh fetches npm and jsr packages from esm.sh.
	CDNEsmSh CDN = "esm.sh"

	// CDNEsmRun fetches npm packages from esm.run (jsDelivr's ESM endpoint).
	CDNEsmRun CDN = "esm.run"

	// CDNJspm fetches npm packages from ga.jspm.io.
	CDNJspm CDN = "jspm"

	// CDNJsdelivr fetches npm packages from cdn.jsdelivr.net.
	CDNJsdelivr CDN = "jsdelivr"
)

// ValidCDNs returns all supported CDN names.
func ValidCDNs() []string {
	return []string{
		string(CDNUnpkg),
		string(CDNEsmSh),
		string(CDNEsmRun),
		string(CDNJspm),
		string(CDNJsdelivr),
	}
}

// ParseCDN converts a string to a CDN.
func ParseCDN(s string) (CDN, error) {
	switch strings.ToLower(s) {
	case "unpkg":
		return CDNUnpkg, nil
	case "esm.sh":
		return CDNEsmSh, nil
	case "esm.run":
		return CDNEsmRun, nil
	case "jspm":
		return CDNJspm, nil
	case "jsdelivr":
		return CDNJsdelivr, nil
	default:
		return "", fmt.Errorf("unknown CDN: %s (valid: %s)", s, strings.Join(ValidCDNs(), ", "))
	}
}

// CDNURL returns the URL for an npm: or jsr: specifier on the given CDN.
// The zero-value CDN defaults to unpkg. Returns ("", false) for local
// paths, specifiers without a file component, and package kinds the
// CDN does not serve (only esm.sh serves jsr packages).
func CDNURL(spec string, cdn CDN) (string, bool) {
	parsed := Parse(spec)
	if parsed.Kind == KindLocal {
		return "", false
	}
	if parsed.Package == "" || parsed.File == "" {
		return "", false
	}

	if cdn == "" {
		cdn = CDNUnpkg
	}

	switch cdn {
	case CDNUnpkg:
		if parsed.Kind != KindNPM {
			return "", false
		}
		return "https://unpkg.com/" + parsed.Package + "/" + parsed.File, true
	case CDNEsmSh:
		if parsed.Kind == KindJSR {
			return "https://esm.sh/jsr/" + parsed.Package + "/" + parsed.File, true
		}
		return "https://esm.sh/" + parsed.Package + "/" + parsed.File, true
	case CDNEsmRun:
		if parsed.Kind != KindNPM {
			return "", false
		}
		return "https://esm.run/" + parsed.Package + "/" + parsed.File, true
	case CDNJspm:
		if parsed.Kind != KindNPM {
			return "", false
		}
		return "https://ga.jspm.io/npm:" + parsed.Package + "/" + parsed.File, true
	case CDNJsdelivr:
		if parsed.Kind != KindNPM {
			return "", false
		}
		return "https://cdn.jsdelivr.net/npm/" + parsed.Package + "/" + parsed.File, true
	default:
		return "", false
	}
}
