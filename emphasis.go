package termsift

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"strings"
)

// EmphasisType identifies one kind of emphasis context a token inherits from
// its ancestor elements (or from the document title).
type EmphasisType uint8

const (
	EmphasisBold EmphasisType = iota
	EmphasisItalic
	EmphasisUnderline
	EmphasisHeader
	EmphasisLinkText
	EmphasisStrong
	EmphasisEm // the <em> element; serialized as "emphasis"
	EmphasisCode
	EmphasisBlockquote

	numEmphasisTypes // sentinel, keep last
)

var emphasisTypeNames = [numEmphasisTypes]string{
	EmphasisBold:       "bold",
	EmphasisItalic:     "italic",
	EmphasisUnderline:  "underline",
	EmphasisHeader:     "header",
	EmphasisLinkText:   "link_text",
	EmphasisStrong:     "strong",
	EmphasisEm:         "emphasis",
	EmphasisCode:       "code",
	EmphasisBlockquote: "blockquote",
}

// EmphasisTypes returns all emphasis types in declaration order. The result
// is a fresh slice on every call.
func EmphasisTypes() []EmphasisType {
	types := make([]EmphasisType, 0, numEmphasisTypes)
	for t := EmphasisType(0); t < numEmphasisTypes; t++ {
		types = append(types, t)
	}
	return types
}

// ParseEmphasisType returns the emphasis type named by s.
func ParseEmphasisType(s string) (EmphasisType, error) {
	for t := EmphasisType(0); t < numEmphasisTypes; t++ {
		if emphasisTypeNames[t] == s {
			return t, nil
		}
	}
	return 0, Errorf(EINVALID, "unknown emphasis type %q", s)
}

// Valid reports whether t is one of the defined emphasis types.
func (t EmphasisType) Valid() bool {
	return t < numEmphasisTypes
}

// String returns the serialized name of t, e.g. "link_text".
func (t EmphasisType) String() string {
	if t.Valid() {
		return emphasisTypeNames[t]
	}
	return fmt.Sprintf("emphasis_type(%d)", uint8(t))
}

// MarshalText implements encoding.TextMarshaler so emphasis types can key
// JSON objects (e.g. per-page emphasis stats).
func (t EmphasisType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, Errorf(EINVALID, "invalid emphasis type %d", uint8(t))
	}
	return []byte(emphasisTypeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EmphasisType) UnmarshalText(text []byte) error {
	parsed, err := ParseEmphasisType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// EmphasisSet is a set of emphasis types with value semantics: the zero
// value is the empty set, == compares contents, and assignment copies, so
// tokens never share mutable emphasis state.
type EmphasisSet uint16

// NewEmphasisSet returns a set containing the given types.
func NewEmphasisSet(types ...EmphasisType) EmphasisSet {
	var s EmphasisSet
	for _, t := range types {
		s.Add(t)
	}
	return s
}

// Add inserts t into the set. Invalid types are ignored.
func (s *EmphasisSet) Add(t EmphasisType) {
	if !t.Valid() {
		return
	}
	*s |= 1 << t
}

// Has reports whether t is in the set.
func (s EmphasisSet) Has(t EmphasisType) bool {
	return t.Valid() && s&(1<<t) != 0
}

// Len returns the number of types in the set.
func (s EmphasisSet) Len() int {
	return bits.OnesCount16(uint16(s))
}

// Types returns the members of the set in declaration order.
func (s EmphasisSet) Types() []EmphasisType {
	types := make([]EmphasisType, 0, s.Len())
	for t := EmphasisType(0); t < numEmphasisTypes; t++ {
		if s.Has(t) {
			types = append(types, t)
		}
	}
	return types
}

// String returns a stable human-readable form, e.g. "[bold header]".
func (s EmphasisSet) String() string {
	names := make([]string, 0, s.Len())
	for _, t := range s.Types() {
		names = append(names, t.String())
	}
	return "[" + strings.Join(names, " ") + "]"
}

// MarshalJSON encodes the set as a sorted array of type names.
func (s EmphasisSet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, s.Len())
	for _, t := range s.Types() {
		names = append(names, t.String())
	}
	return json.Marshal(names)
}

// UnmarshalJSON decodes an array of type names.
func (s *EmphasisSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var set EmphasisSet
	for _, name := range names {
		t, err := ParseEmphasisType(name)
		if err != nil {
			return err
		}
		set.Add(t)
	}
	*s = set
	return nil
}
