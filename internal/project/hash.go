package project

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// CacheKey derives the cache key of a parsed file: H( schema || content ).
// Bumping schema invalidates every cached entry.
func CacheKey(content Digest, schema uint16) Digest {
	h := sha256.New()
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], schema)
	_, _ = h.Write(buf[:])
	_, _ = h.Write(content[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}
