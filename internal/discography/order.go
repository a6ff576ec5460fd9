package discography

import (
	"sort"
	"strconv"
	"strings"
)

// SortMode orders songs for the heatmap view.
type SortMode string

const (
	SortChronological SortMode = "chronological"
	SortRelease       SortMode = "release"
	SortWordCount     SortMode = "word_count"
	SortBPM           SortMode = "bpm"
	SortDuration      SortMode = "duration"
)

// SortModes lists the supported sort modes.
var SortModes = []SortMode{SortChronological, SortRelease, SortWordCount, SortBPM, SortDuration}

// SortSongs returns a sorted copy of songs:
//   - chronological: year ascending, then title
//   - release: release title, then year
//   - word_count: most words first
//   - bpm: slowest first
//   - duration: longest first
//
// Sorting is stable. An unknown mode returns the songs in input order.
func SortSongs(songs []*Song, mode SortMode) []*Song {
	out := append([]*Song(nil), songs...)

	var less func(a, b *Song) bool
	switch mode {
	case SortChronological:
		less = func(a, b *Song) bool {
			if a.Year != b.Year {
				return a.Year < b.Year
			}
			return compareFold(a.Title, b.Title) < 0
		}
	case SortRelease:
		less = func(a, b *Song) bool {
			if c := compareFold(releaseTitle(a), releaseTitle(b)); c != 0 {
				return c < 0
			}
			return a.Year < b.Year
		}
	case SortWordCount:
		less = func(a, b *Song) bool { return a.Stats.WordCount > b.Stats.WordCount }
	case SortBPM:
		less = func(a, b *Song) bool { return a.BPM < b.BPM }
	case SortDuration:
		less = func(a, b *Song) bool { return a.DurationSec > b.DurationSec }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// compareFold orders strings case-insensitively, falling back to a byte
// comparison so distinct strings never compare equal.
func compareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func releaseTitle(s *Song) string {
	if s.Release == nil {
		return ""
	}
	return s.Release.Title
}

// GroupBy selects how GroupSongs partitions songs.
type GroupBy string

const (
	GroupNone       GroupBy = "none"
	GroupYear       GroupBy = "year"
	GroupRelease    GroupBy = "release"
	GroupCategory   GroupBy = "category"
	GroupKeyQuality GroupBy = "key_quality"
)

// SongGroup is one labeled partition of songs.
type SongGroup struct {
	Label string  `json:"label"`
	Songs []*Song `json:"songs"`
}

// GroupSongs partitions songs. Groups appear in first-seen order, except year
// groups which are ordered numerically with "Unknown" last. GroupNone (and any
// unknown mode) yields a single group with an empty label.
func GroupSongs(songs []*Song, by GroupBy) []SongGroup {
	var label func(*Song) string
	switch by {
	case GroupYear:
		label = func(s *Song) string {
			if s.Year == 0 {
				return UnknownLabel
			}
			return strconv.Itoa(s.Year)
		}
	case GroupRelease:
		label = func(s *Song) string { return orUnknown(releaseTitle(s)) }
	case GroupCategory:
		label = func(s *Song) string { return orUnknown(s.CategoryName) }
	case GroupKeyQuality:
		label = func(s *Song) string {
			if s.KeyQuality == KeyMinor {
				return "Minor"
			}
			return "Major"
		}
	default:
		return []SongGroup{{Label: "", Songs: append([]*Song{}, songs...)}}
	}

	index := make(map[string]int)
	var groups []SongGroup
	for _, s := range songs {
		l := label(s)
		i, ok := index[l]
		if !ok {
			i = len(groups)
			index[l] = i
			groups = append(groups, SongGroup{Label: l})
		}
		groups[i].Songs = append(groups[i].Songs, s)
	}

	if by == GroupYear {
		sort.SliceStable(groups, func(i, j int) bool {
			yi, errI := strconv.Atoi(groups[i].Label)
			yj, errJ := strconv.Atoi(groups[j].Label)
			switch {
			case errI != nil:
				return false
			case errJ != nil:
				return true
			default:
				return yi < yj
			}
		})
	}
	if groups == nil {
		groups = []SongGroup{}
	}
	return groups
}
