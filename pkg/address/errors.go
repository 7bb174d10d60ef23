// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package address

import (
	stderrors "errors"

	"gitlab.com/accumulatenetwork/raiblocks/pkg/errors"
)

// ErrWrongPrefix means that an address did not start with a known prefix.
var ErrWrongPrefix = stderrors.New("wrong prefix")

// ErrWrongLength means that an address had the wrong number of characters.
var ErrWrongLength = stderrors.New("wrong length")

// ErrInvalidCharacter means that an address included a character outside the
// account alphabet.
var ErrInvalidCharacter = stderrors.New("invalid character")

// ErrBadChecksum means that an address's checksum did not match its key.
var ErrBadChecksum = stderrors.New("bad checksum")

func wrongPrefix(s string) error {
	return errors.BadRequest.WithFormat("%w in address %q", ErrWrongPrefix, s)
}

func wrongLength(s string) error {
	return errors.BadRequest.WithFormat("%w in address %q", ErrWrongLength, s)
}

func invalidCharacter(s string, c byte) error {
	return errors.BadRequest.WithFormat("%w %q in address %q", ErrInvalidCharacter, c, s)
}

func badChecksum(s string) error {
	return errors.BadRequest.WithFormat("%w in address %q", ErrBadChecksum, s)
}
