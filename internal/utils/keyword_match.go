package utils

import (
	"encoding/json"
	"strings"
)

// NormalizeLabel lower-cases and trims a detector label
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// KeywordSet is an ordered, immutable set of normalized keywords.
//
// It exposes the three matching policies used by the room and clutter rules:
//   - Contains: exact membership of the normalized label
//   - ContainsAny: the label contains one of the keywords
//   - MatchAny: the label contains a keyword OR a keyword contains the label
//
// MatchAny is deliberately lenient ("pan" matches "pantry" both ways).
// Empty labels never match under any policy.
type KeywordSet struct {
	keywords []string
	index    map[string]struct{}
}

// NewKeywordSet builds a set from keywords, normalizing them and dropping
// blanks and duplicates while keeping first-seen order.
func NewKeywordSet(keywords ...string) KeywordSet {
	s := KeywordSet{
		keywords: make([]string, 0, len(keywords)),
		index:    make(map[string]struct{}, len(keywords)),
	}
	for _, k := range keywords {
		k = NormalizeLabel(k)
		if k == "" {
			continue
		}
		if _, dup := s.index[k]; dup {
			continue
		}
		s.index[k] = struct{}{}
		s.keywords = append(s.keywords, k)
	}
	return s
}

// Len returns the number of keywords
func (s KeywordSet) Len() int {
	return len(s.keywords)
}

// Keywords returns a copy of the keywords in insertion order
func (s KeywordSet) Keywords() []string {
	out := make([]string, len(s.keywords))
	copy(out, s.keywords)
	return out
}

// Contains reports exact membership of the normalized label
func (s KeywordSet) Contains(label string) bool {
	label = NormalizeLabel(label)
	if label == "" {
		return false
	}
	_, ok := s.index[label]
	return ok
}

// ContainsAny returns the first keyword the label contains
func (s KeywordSet) ContainsAny(label string) (string, bool) {
	label = NormalizeLabel(label)
	if label == "" {
		return "", false
	}
	for _, k := range s.keywords {
		if strings.Contains(label, k) {
			return k, true
		}
	}
	return "", false
}

// MatchAny returns the first keyword that contains, or is contained in, the label
func (s KeywordSet) MatchAny(label string) (string, bool) {
	label = NormalizeLabel(label)
	if label == "" {
		return "", false
	}
	for _, k := range s.keywords {
		if strings.Contains(label, k) || strings.Contains(k, label) {
			return k, true
		}
	}
	return "", false
}

// MarshalJSON encodes the set as its keyword list
func (s KeywordSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Keywords())
}

// UnmarshalJSON decodes a keyword list, normalizing it like NewKeywordSet
func (s *KeywordSet) UnmarshalJSON(data []byte) error {
	var keywords []string
	if err := json.Unmarshal(data, &keywords); err != nil {
		return err
	}
	*s = NewKeywordSet(keywords...)
	return nil
}

// MarshalYAML encodes the set as a YAML sequence
func (s KeywordSet) MarshalYAML() (interface{}, error) {
	return s.Keywords(), nil
}
