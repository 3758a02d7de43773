/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package host

import "errors"

// Host errors.
var (
	// ErrNotFound indicates a collection or variable lookup missed.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName indicates a create collided with an existing name.
	ErrDuplicateName = errors.New("name already in use")

	// ErrUnavailable indicates the backend cannot be reached.
	ErrUnavailable = errors.New("host unavailable")

	// ErrInvalidHex indicates a malformed hex color string.
	ErrInvalidHex = errors.New("invalid hex color")
)
