/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"regexp"
	"strings"
)

// aliasPattern matches a value that is exactly one {token.path} reference.
var aliasPattern = regexp.MustCompile(`^\{([^{}]+)\}$`)

// AliasPath extracts the referenced token path from a whole-value alias
// such as "{color.primary}". Only values consisting of a single
// reference count; references embedded in longer strings stay literal.
func AliasPath(value string) (string, bool) {
	matches := aliasPattern.FindStringSubmatch(strings.TrimSpace(value))
	if len(matches) != 2 {
		return "", false
	}
	return matches[1], true
}

// IsAlias reports whether value is a whole-value alias reference.
func IsAlias(value string) bool {
	_, ok := AliasPath(value)
	return ok
}
