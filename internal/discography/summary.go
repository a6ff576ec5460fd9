package discography

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// UnknownLabel names songs with an empty category, perspective or release in
// breakdowns and groupings.
const UnknownLabel = "Unknown"

// Bucket is a named count in a breakdown, in first-seen order.
type Bucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PersonCount is a person with a credit count.
type PersonCount struct {
	PersonID string `json:"person_id"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

// Summary aggregates a set of songs for the stats overview.
type Summary struct {
	Total       int `json:"total"`
	Explicit    int `json:"explicit"`
	HasVideo    int `json:"has_video"`
	Published   int `json:"published"`
	HasFeatured int `json:"has_featured"`
	NoFeatured  int `json:"no_featured"`

	TotalWords    int `json:"total_words"`
	AvgWords      int `json:"avg_words"` // over songs with lyrics
	TotalDuration int `json:"total_duration"`
	AvgDuration   int `json:"avg_duration"`
	AvgBPM        int `json:"avg_bpm"` // over songs with a known bpm

	CategoryBreakdown    []Bucket `json:"category_breakdown"`
	PerspectiveBreakdown []Bucket `json:"perspective_breakdown"`
	KeyBreakdown         []Bucket `json:"key_breakdown"`
	MajorCount           int      `json:"major_count"`
	MinorCount           int      `json:"minor_count"`
	MostUsedKey          *Bucket  `json:"most_used_key,omitempty"`
	MostUsedBPM          *Bucket  `json:"most_used_bpm,omitempty"`

	TopVocalists []PersonCount `json:"top_vocalists"`
	TopMixers    []PersonCount `json:"top_mixers"`
	TopMasterers []PersonCount `json:"top_masterers"`

	MostWords        *Song `json:"most_words,omitempty"`
	FewestWords      *Song `json:"fewest_words,omitempty"`
	LongestDuration  *Song `json:"longest_duration,omitempty"`
	ShortestDuration *Song `json:"shortest_duration,omitempty"`

	TopWords []WordCount `json:"top_words"`
}

// Summarize aggregates songs. Credit leaderboards count every credit in db,
// not only those of the given songs. Returns nil when songs is empty.
func Summarize(db *Database, songs []*Song) *Summary {
	if len(songs) == 0 {
		return nil
	}

	sum := &Summary{Total: len(songs)}

	var (
		withLyrics    int
		totalDuration float64
		bpmTotal      float64
		bpmSongs      int
		categories    = newTally()
		perspectives  = newTally()
		keys          = newTally()
		bpms          = newTally()
		entries       []LyricsEntry
	)

	for _, s := range songs {
		if s.IsExplicit {
			sum.Explicit++
		}
		if s.HasVideo {
			sum.HasVideo++
		}
		if s.IsPublished {
			sum.Published++
		}
		if s.HasFeatured() {
			sum.HasFeatured++
		} else {
			sum.NoFeatured++
		}

		sum.TotalWords += s.Stats.WordCount
		if strings.TrimSpace(s.LyricsText) != "" {
			withLyrics++
		}
		if s.LyricsText != "" {
			entries = append(entries, LyricsEntry{SongID: s.ID, Text: s.LyricsText})
		}

		totalDuration += s.DurationSec
		if s.BPM > 0 {
			bpmTotal += s.BPM
			bpmSongs++
			bpms.add(strconv.FormatFloat(s.BPM, 'f', -1, 64))
		}

		categories.add(orUnknown(s.CategoryName))
		perspectives.add(orUnknown(s.PerspectiveName))
		if s.Key != "" {
			keys.add(s.Key)
		}
		switch s.KeyQuality {
		case KeyMajor:
			sum.MajorCount++
		case KeyMinor:
			sum.MinorCount++
		}
	}

	if withLyrics > 0 {
		sum.AvgWords = int(math.Round(float64(sum.TotalWords) / float64(withLyrics)))
	}
	sum.TotalDuration = int(math.Round(totalDuration))
	sum.AvgDuration = int(math.Round(totalDuration / float64(len(songs))))
	if bpmSongs > 0 {
		sum.AvgBPM = int(math.Round(bpmTotal / float64(bpmSongs)))
	}

	sum.CategoryBreakdown = categories.buckets()
	sum.PerspectiveBreakdown = perspectives.buckets()
	sum.KeyBreakdown = keys.buckets()
	sum.MostUsedKey = keys.most()
	sum.MostUsedBPM = bpms.most()

	sum.TopVocalists = creditLeaders(db, RoleFeaturedVocals)
	sum.TopMixers = creditLeaders(db, RoleMixing)
	sum.TopMasterers = creditLeaders(db, RoleMastering)

	sum.MostWords = extreme(songs, func(s *Song) float64 { return float64(s.Stats.WordCount) }, true)
	sum.FewestWords = extreme(songs, func(s *Song) float64 { return float64(s.Stats.WordCount) }, false)
	sum.LongestDuration = extreme(songs, func(s *Song) float64 { return s.DurationSec }, true)
	sum.ShortestDuration = extreme(songs, func(s *Song) float64 { return s.DurationSec }, false)

	sum.TopWords = TopWordsAcrossAll(entries)
	return sum
}

func orUnknown(s string) string {
	if s == "" {
		return UnknownLabel
	}
	return s
}

// tally counts names in first-seen order.
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(name string) {
	if _, ok := t.counts[name]; !ok {
		t.order = append(t.order, name)
	}
	t.counts[name]++
}

func (t *tally) buckets() []Bucket {
	out := make([]Bucket, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, Bucket{Name: name, Count: t.counts[name]})
	}
	return out
}

// most returns the bucket with the highest count, first seen on ties.
func (t *tally) most() *Bucket {
	var best *Bucket
	for _, name := range t.order {
		if best == nil || t.counts[name] > best.Count {
			best = &Bucket{Name: name, Count: t.counts[name]}
		}
	}
	return best
}

// creditLeaders counts credits of one role per person over the whole database.
// Credits whose person or role does not resolve are skipped.
func creditLeaders(db *Database, kind RoleKind) []PersonCount {
	counts := make(map[string]*PersonCount)
	var order []string
	for _, c := range db.SongCredits {
		role := db.Indexes.Roles[c.RoleID]
		if role == nil || role.Kind != kind {
			continue
		}
		person := db.Indexes.People[c.PersonID]
		if person == nil {
			continue
		}
		pc, ok := counts[c.PersonID]
		if !ok {
			pc = &PersonCount{PersonID: c.PersonID, Name: person.Name}
			counts[c.PersonID] = pc
			order = append(order, c.PersonID)
		}
		pc.Count++
	}

	out := make([]PersonCount, 0, len(order))
	for _, id := range order {
		out = append(out, *counts[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// extreme returns the first song with the largest (or smallest) value. The
// smallest ignores songs whose value is zero; nil when nothing qualifies.
func extreme(songs []*Song, value func(*Song) float64, largest bool) *Song {
	var best *Song
	var bestVal float64
	for _, s := range songs {
		v := value(s)
		if !largest && v <= 0 {
			continue
		}
		if best == nil || (largest && v > bestVal) || (!largest && v < bestVal) {
			best, bestVal = s, v
		}
	}
	return best
}
