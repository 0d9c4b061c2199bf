package diagram

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// idPrefixes maps each node variant to its fixed short id prefix.
var idPrefixes = map[NodeType]string{
	TypeParticipant: "part",
	TypeMessage:     "msg",
	TypeFragment:    "frag",
	TypeNote:        "note",
	TypeDivider:     "div",
	TypeDirective:   "dir",
	TypeComment:     "cmt",
	TypeBlankLine:   "blank",
	TypeError:       "err",
}

// IDSource mints node ids. Implementations must return a distinct id per
// call within one editing session.
type IDSource interface {
	// NewID returns a fresh type-prefixed id for the given variant.
	NewID(t NodeType) string
}

// SequentialIDs mints deterministic per-type counter ids ("msg-1", "msg-2",
// ...). Deterministic ids keep parses reproducible, which is what tests and
// structural document comparison want. Not safe for concurrent use.
type SequentialIDs struct {
	counts map[NodeType]int
}

// NewSequentialIDs returns a SequentialIDs starting every counter at 1.
func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{counts: make(map[NodeType]int)}
}

// NewID returns the next id for the variant.
func (s *SequentialIDs) NewID(t NodeType) string {
	s.counts[t]++
	return fmt.Sprintf("%s-%d", idPrefixes[t], s.counts[t])
}

// RandomIDs mints ids with a UUID-derived suffix ("msg-3f2a9c4188d1"). Use
// it when ids must stay unique across editing sessions, e.g. when documents
// produced by different runs are merged or content-addressed.
type RandomIDs struct{}

// NewID returns a fresh UUID-suffixed id for the variant.
func (RandomIDs) NewID(t NodeType) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return idPrefixes[t] + "-" + suffix
}
