package discography

import (
	"strconv"
	"strings"
)

// FilterSpec narrows a song list. Every field is optional: empty slices, nil
// pointers and empty strings impose no constraint. Fields combine with AND.
type FilterSpec struct {
	Years        []int    `json:"years,omitempty"`
	Releases     []string `json:"releases,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	Perspectives []string `json:"perspectives,omitempty"`
	Keys         []string `json:"keys,omitempty"`

	IsPublished *bool `json:"is_published,omitempty"`
	IsExplicit  *bool `json:"is_explicit,omitempty"`
	HasVideo    *bool `json:"has_video,omitempty"`
	HasFeatured *bool `json:"has_featured,omitempty"`

	// KeyQuality is "all", "major" or "minor"; "" behaves like "all".
	KeyQuality string `json:"key_quality,omitempty"`

	People []string `json:"people,omitempty"`

	SearchQuery string `json:"search_query,omitempty"`
	LyricSearch string `json:"lyric_search,omitempty"`
}

// KeyQualityAll disables the key quality constraint.
const KeyQualityAll = "all"

// IsEmpty reports whether the filter imposes no constraint.
func (f FilterSpec) IsEmpty() bool {
	return len(f.Years) == 0 && len(f.Releases) == 0 && len(f.Categories) == 0 &&
		len(f.Perspectives) == 0 && len(f.Keys) == 0 &&
		f.IsPublished == nil && f.IsExplicit == nil && f.HasVideo == nil && f.HasFeatured == nil &&
		(f.KeyQuality == "" || f.KeyQuality == KeyQualityAll) &&
		len(f.People) == 0 && f.SearchQuery == "" && f.LyricSearch == ""
}

// ApplyFilters returns the songs matching spec in their original order. The
// input slice is never modified.
func ApplyFilters(songs []*Song, spec FilterSpec) []*Song {
	m := newMatcher(spec)
	out := make([]*Song, 0, len(songs))
	for _, s := range songs {
		if m.match(s) {
			out = append(out, s)
		}
	}
	return out
}

// matcher holds a FilterSpec with its set fields precomputed.
type matcher struct {
	spec         FilterSpec
	years        map[int]struct{}
	releases     map[string]struct{}
	categories   map[string]struct{}
	perspectives map[string]struct{}
	keys         map[string]struct{}
	people       map[string]struct{}
	search       string
	lyricSearch  string
}

func newMatcher(spec FilterSpec) *matcher {
	m := &matcher{
		spec:         spec,
		releases:     stringSet(spec.Releases),
		categories:   stringSet(spec.Categories),
		perspectives: stringSet(spec.Perspectives),
		keys:         stringSet(spec.Keys),
		people:       stringSet(spec.People),
		search:       strings.ToLower(spec.SearchQuery),
		lyricSearch:  strings.ToLower(spec.LyricSearch),
	}
	if len(spec.Years) > 0 {
		m.years = make(map[int]struct{}, len(spec.Years))
		for _, y := range spec.Years {
			m.years[y] = struct{}{}
		}
	}
	return m
}

func stringSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func inSet[K comparable](set map[K]struct{}, v K) bool {
	if set == nil {
		return true
	}
	_, ok := set[v]
	return ok
}

func boolMatches(want *bool, got bool) bool {
	return want == nil || *want == got
}

func (m *matcher) match(s *Song) bool {
	if !inSet(m.years, s.Year) ||
		!inSet(m.releases, s.ReleaseID) ||
		!inSet(m.categories, s.CategoryName) ||
		!inSet(m.perspectives, s.PerspectiveName) ||
		!inSet(m.keys, s.Key) {
		return false
	}

	if !boolMatches(m.spec.IsPublished, s.IsPublished) ||
		!boolMatches(m.spec.IsExplicit, s.IsExplicit) ||
		!boolMatches(m.spec.HasVideo, s.HasVideo) ||
		!boolMatches(m.spec.HasFeatured, s.HasFeatured()) {
		return false
	}

	if kq := m.spec.KeyQuality; kq != "" && kq != KeyQualityAll && string(s.KeyQuality) != kq {
		return false
	}

	if m.people != nil && !creditsAnyPerson(s, m.people) {
		return false
	}

	if m.search != "" && !strings.Contains(searchHaystack(s), m.search) {
		return false
	}

	if m.lyricSearch != "" {
		if s.LyricsText == "" || !strings.Contains(strings.ToLower(s.LyricsText), m.lyricSearch) {
			return false
		}
	}

	return true
}

func creditsAnyPerson(s *Song, people map[string]struct{}) bool {
	for _, c := range s.Credits {
		if _, ok := people[c.PersonID]; ok {
			return true
		}
	}
	return false
}

// searchHaystack joins the searchable fields of a song, lowercased. Zero year
// and zero bpm contribute empty strings.
func searchHaystack(s *Song) string {
	parts := []string{
		s.Title,
		formatNonZeroInt(s.Year),
		s.Key,
		formatNonZeroFloat(s.BPM),
		s.CategoryName,
		s.PerspectiveName,
	}
	if s.Release != nil {
		parts = append(parts, s.Release.Title, s.Release.ReleaseType)
	} else {
		parts = append(parts, "", "")
	}
	for _, c := range s.Credits {
		parts = append(parts, c.PersonName())
	}
	for _, c := range s.Credits {
		parts = append(parts, strings.ReplaceAll(c.RoleName(), "_", " "))
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func formatNonZeroInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func formatNonZeroFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
