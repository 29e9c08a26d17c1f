// Package token generates the two public-facing tokens of the service:
// playlist slugs and 4-digit access PINs. Generation is pure; uniqueness
// of slugs is the storage layer's job (retry on conflict).
package token

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// slugAlphabet matches the nanoid default: URL-safe, 64 symbols.
const slugAlphabet = "useandom-26T198340PX75pxJACKVERYMINDBUSHWOLF_GQZbfghjklqvwyzrict"

// SlugLength is the length of a playlist's public slug.
const SlugLength = 8

// NewSlug returns an 8-character URL-safe token. With 64^8 possible values
// collisions are negligible, but callers must still enforce uniqueness at
// the storage layer.
func NewSlug() string {
	return randomString(slugAlphabet, SlugLength)
}

// NewPIN returns a 4-digit numeric string drawn uniformly from "0000" to
// "9999", leading zeros included. 10,000 possibilities is a low-friction
// deterrent for shared playlists, not a security boundary.
func NewPIN() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// crypto/rand failing means the platform is broken.
		panic(fmt.Sprintf("token: read random: %v", err))
	}
	return fmt.Sprintf("%04d", n.Int64())
}

func randomString(alphabet string, length int) string {
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(fmt.Sprintf("token: read random: %v", err))
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf)
}
