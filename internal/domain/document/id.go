package document

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// NewID returns an opaque id: millisecond timestamp in base 36 plus 64
// random bits in base 36. Sections and items get ids in bursts on every
// generation, so the suffix has to survive many calls within the same
// millisecond.
func NewID() string {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		binary.BigEndian.PutUint64(b[:], rand.Uint64())
	}
	buf := make([]byte, 0, 22)
	buf = strconv.AppendInt(buf, time.Now().UnixMilli(), 36)
	buf = strconv.AppendUint(buf, binary.BigEndian.Uint64(b[:]), 36)
	return string(buf)
}

// NewNumber builds a human-readable reference like D-2026-417. The letter
// is the first letter of the document type.
func NewNumber(t Type) string {
	letter := "D"
	if t != "" {
		letter = string(t[0])
	}
	return fmt.Sprintf("%s-%d-%d", letter, time.Now().Year(), rand.Intn(1000))
}
