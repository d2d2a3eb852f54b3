package pbxproj

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/xid"
)

// ID is an object identifier inside a project file: 24 uppercase hex
// characters (96 bits). IDs only need to be unique within one document.
type ID string

var idPattern = regexp.MustCompile(`^[0-9A-F]{24}$`)

// Valid reports whether id has the shape Xcode expects.
func (id ID) Valid() bool {
	return idPattern.MatchString(string(id))
}

// IDGenerator hands out fresh identifiers for one document.
type IDGenerator interface {
	NewID() ID
}

// XIDGenerator produces identifiers from xid values. An xid is exactly
// 12 bytes and carries a per-process counter, so IDs never repeat within
// a run and differ between runs.
type XIDGenerator struct{}

// NewID returns a new random-looking identifier.
func (XIDGenerator) NewID() ID {
	return ID(strings.ToUpper(hex.EncodeToString(xid.New().Bytes())))
}

// SequenceGenerator produces predictable identifiers. Tests use it to
// assert exact output.
type SequenceGenerator struct {
	Prefix string // at most 8 hex characters; defaults to "0"
	next   uint64
}

// NewID returns the next identifier in the sequence.
func (g *SequenceGenerator) NewID() ID {
	g.next++
	prefix := strings.ToUpper(g.Prefix)
	if prefix == "" {
		prefix = "0"
	}
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return ID(fmt.Sprintf("%s%0*X", prefix, 24-len(prefix), g.next))
}
