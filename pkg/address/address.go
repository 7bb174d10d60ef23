// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package address

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"gitlab.com/accumulatenetwork/raiblocks/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	// PrefixXRB is the legacy account prefix.
	PrefixXRB = "xrb_"

	// PrefixNano is the newer account prefix. Both refer to the same keys.
	PrefixNano = "nano_"

	keyChars      = 52
	checksumChars = 8
	checksumSize  = 5
)

const alphabet = "13456789abcdefghijkmnopqrstuwxyz"

var alphabetIndex = func() [256]int8 {
	var idx [256]int8
	for i := range idx {
		idx[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		idx[alphabet[i]] = int8(i)
	}
	return idx
}()

// PublicKey is an ed25519 account public key.
type PublicKey [32]byte

// String returns the key as upper-case hex, the way the node renders it.
func (k PublicKey) String() string {
	return strings.ToUpper(hex.EncodeToString(k[:]))
}

// ParsePublicKey parses a 64 character hex string.
func ParsePublicKey(s string) (PublicKey, error) {
	var k PublicKey
	b, err := hex.DecodeString(s)
	if err != nil {
		return k, errors.BadRequest.WithFormat("invalid public key %q: %v", s, err)
	}
	if len(b) != len(k) {
		return k, errors.BadRequest.WithFormat("invalid public key %q: want %d bytes, got %d", s, len(k), len(b))
	}
	copy(k[:], b)
	return k, nil
}

// MarshalText implements [encoding.TextMarshaler].
func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *PublicKey) UnmarshalText(b []byte) error {
	v, err := ParsePublicKey(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Address is an account address, a public key with a prefix and checksum.
type Address struct {
	Prefix string
	Key    PublicKey
}

// Parse parses and verifies an account address such as
// xrb_3t6k35gi95xu6tergt6p69ck76ogmitsa8mnijtpxm9fkcm736xtoncuohr3.
func Parse(s string) (*Address, error) {
	var prefix string
	switch {
	case strings.HasPrefix(s, PrefixXRB):
		prefix = PrefixXRB
	case strings.HasPrefix(s, PrefixNano):
		prefix = PrefixNano
	default:
		return nil, wrongPrefix(s)
	}

	body := s[len(prefix):]
	if len(body) != keyChars+checksumChars {
		return nil, wrongLength(s)
	}
	for i := 0; i < len(body); i++ {
		if alphabetIndex[body[i]] < 0 {
			return nil, invalidCharacter(s, body[i])
		}
	}

	key, ok := decode32(body[:keyChars], len(PublicKey{}))
	if !ok {
		return nil, invalidCharacter(s, body[0])
	}
	sum, ok := decode32(body[keyChars:], checksumSize)
	if !ok {
		return nil, badChecksum(s)
	}

	a := new(Address)
	a.Prefix = prefix
	copy(a.Key[:], key)
	if !bytes.Equal(sum, checksum(a.Key)) {
		return nil, badChecksum(s)
	}
	return a, nil
}

// MustParse calls Parse and panics if it returns an error.
func MustParse(s string) *Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromPublicKey returns the xrb_ address of the key.
func FromPublicKey(key PublicKey) *Address {
	return &Address{Prefix: PrefixXRB, Key: key}
}

// String returns the address with its checksum.
func (a *Address) String() string {
	prefix := a.Prefix
	if prefix == "" {
		prefix = PrefixXRB
	}
	return prefix + encode32(a.Key[:], keyChars) + encode32(checksum(a.Key), checksumChars)
}

// Equal returns true if both addresses refer to the same key. The prefix is
// not compared.
func (a *Address) Equal(b *Address) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.Key == b.Key
}

// MarshalText implements [encoding.TextMarshaler].
func (a *Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Address) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*a = *v
	return nil
}

// MarshalJSON marshals the address to JSON as a string.
func (a *Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON unmarshals the address from JSON as a string.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return errors.DecodeError.WithFormat("address must be a string, got %s", data)
	}
	return a.UnmarshalText([]byte(s))
}

// checksum is the 5-byte Blake2b digest of the key, byte reversed.
func checksum(key PublicKey) []byte {
	h, err := blake2b.New(checksumSize, nil)
	if err != nil {
		panic(err) // Only fails for invalid sizes
	}
	_, _ = h.Write(key[:])
	sum := h.Sum(nil)
	for i, j := 0, len(sum)-1; i < j; i, j = i+1, j-1 {
		sum[i], sum[j] = sum[j], sum[i]
	}
	return sum
}

// encode32 encodes b as n characters, left-padding with zero bits.
func encode32(b []byte, n int) string {
	out := make([]byte, n)
	pad := n*5 - len(b)*8
	for i := range out {
		var v byte
		for j := 0; j < 5; j++ {
			v <<= 1
			bit := i*5 + j - pad
			if bit >= 0 && b[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// decode32 decodes s into size bytes. The padding bits must be zero.
func decode32(s string, size int) ([]byte, bool) {
	out := make([]byte, size)
	pad := len(s)*5 - size*8
	for i := 0; i < len(s); i++ {
		v := alphabetIndex[s[i]]
		if v < 0 {
			return nil, false
		}
		for j := 0; j < 5; j++ {
			set := v&(0x10>>j) != 0
			bit := i*5 + j - pad
			if bit < 0 {
				if set {
					return nil, false
				}
				continue
			}
			if set {
				out[bit/8] |= 0x80 >> (bit % 8)
			}
		}
	}
	return out, true
}
