package expense

import "strings"

// DefaultCategories is the category list the budget spreadsheet knows about.
// Override with the CATEGORIES env var to track spreadsheet-side changes
// without a rebuild.
var DefaultCategories = []string{
	"food",
	"transport",
	"entertainment",
	"shopping",
	"bills",
	"others",
}

// CategorySet is an ordered set of valid category names with
// case-insensitive membership. Read-only after construction.
type CategorySet struct {
	names []string
	index map[string]struct{}
}

// NewCategorySet builds a set from the given names, lower-casing and
// de-duplicating while preserving first-seen order.
func NewCategorySet(names []string) *CategorySet {
	s := &CategorySet{index: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, ok := s.index[n]; ok {
			continue
		}
		s.index[n] = struct{}{}
		s.names = append(s.names, n)
	}
	return s
}

// Contains reports whether name is a member, ignoring case.
func (s *CategorySet) Contains(name string) bool {
	_, ok := s.index[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Names returns the member names in order.
func (s *CategorySet) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of members.
func (s *CategorySet) Len() int {
	return len(s.names)
}
