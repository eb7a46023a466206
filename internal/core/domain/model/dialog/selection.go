package dialog

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"bookstore/internal/core/domain/model/catalog"
)

// MaxCandidates caps how many search matches are offered for selection.
const MaxCandidates = 10

var (
	ErrSelectionExpired      = errors.New("candidate list is missing or expired")
	ErrSelectionUnknownIndex = errors.New("selected number is not in the candidate list")
	ErrSelectionNoMatch      = errors.New("no candidate matches the reply")
	ErrSelectionAmbiguous    = errors.New("several candidates match the reply")
)

var indexPattern = regexp.MustCompile(`(?:^|\D)(\d{1,2})(?:\D|$)`)

// Selection is the numbered shortlist shown while the user picks a book.
// Candidates maps the display numbers "1".."N" to book ids and Preview holds
// the same books in display order.
type Selection struct {
	Candidates map[string]int64 `json:"candidates"`
	Preview    []catalog.Book   `json:"candidate_preview"`
	Total      int              `json:"total"`
}

// NewSelection numbers the first MaxCandidates matches.
func NewSelection(matches []catalog.Book) *Selection {
	shown := matches
	if len(shown) > MaxCandidates {
		shown = shown[:MaxCandidates]
	}

	s := &Selection{
		Candidates: make(map[string]int64, len(shown)),
		Preview:    append([]catalog.Book(nil), shown...),
		Total:      len(matches),
	}
	for i, b := range shown {
		s.Candidates[strconv.Itoa(i+1)] = b.ID
	}
	return s
}

// Omitted is the number of matches left out of the shortlist.
func (s *Selection) Omitted() int {
	if s.Total <= len(s.Preview) {
		return 0
	}
	return s.Total - len(s.Preview)
}

// Validate checks that the keys are exactly "1".."N" over the preview.
func (s *Selection) Validate() error {
	if s == nil || len(s.Candidates) == 0 {
		return ErrSelectionExpired
	}
	if len(s.Candidates) != len(s.Preview) {
		return ErrSelectionExpired
	}
	for i, b := range s.Preview {
		if id, ok := s.Candidates[strconv.Itoa(i+1)]; !ok || id != b.ID {
			return ErrSelectionExpired
		}
	}
	return nil
}

// Resolve picks a book id from the user's reply. A one or two digit number
// selects by position, any other text must be a case-insensitive substring
// of exactly one previewed title.
func (s *Selection) Resolve(reply string) (int64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	if m := indexPattern.FindStringSubmatch(reply); m != nil {
		id, ok := s.Candidates[m[1]]
		if !ok {
			return 0, ErrSelectionUnknownIndex
		}
		return id, nil
	}

	needle := strings.ToLower(strings.TrimSpace(reply))
	if needle == "" {
		return 0, ErrSelectionNoMatch
	}

	var found []int64
	for _, b := range s.Preview {
		if strings.Contains(strings.ToLower(b.Title), needle) {
			found = append(found, b.ID)
		}
	}

	switch len(found) {
	case 0:
		return 0, ErrSelectionNoMatch
	case 1:
		return found[0], nil
	default:
		return 0, ErrSelectionAmbiguous
	}
}

// Clone returns a deep copy.
func (s *Selection) Clone() *Selection {
	if s == nil {
		return nil
	}
	c := &Selection{
		Candidates: make(map[string]int64, len(s.Candidates)),
		Preview:    append([]catalog.Book(nil), s.Preview...),
		Total:      s.Total,
	}
	for k, v := range s.Candidates {
		c.Candidates[k] = v
	}
	return c
}
