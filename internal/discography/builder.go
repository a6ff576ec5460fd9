package discography

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// ErrMissingSongs is returned when a payload has no songs collection at all.
// An empty songs collection is not an error.
var ErrMissingSongs = errors.New("payload has no songs collection")

// DefaultPersonAliases maps known spelling variants to the canonical name.
var DefaultPersonAliases = map[string]string{
	"Amir B": "Amir",
}

// Builder turns a raw payload into a Database.
type Builder interface {
	// Build runs one complete normalization pass. It returns either a fully
	// cross-referenced Database or an error, never a partial graph.
	Build(raw *RawPayload) (*Database, error)
}

// builder implements Builder. It holds configuration only; all per-build state
// lives in a buildState created inside Build.
type builder struct {
	aliases map[string]string
	logger  zerolog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*builder)

// WithPersonAliases replaces the alias table used for person deduplication.
func WithPersonAliases(aliases map[string]string) BuilderOption {
	return func(b *builder) {
		b.aliases = make(map[string]string, len(aliases))
		for from, to := range aliases {
			b.aliases[foldName(from)] = strings.TrimSpace(to)
		}
	}
}

// WithLogger sets the logger used to report recovered field-level defects.
func WithLogger(logger zerolog.Logger) BuilderOption {
	return func(b *builder) {
		b.logger = logger
	}
}

// NewBuilder creates a Builder using DefaultPersonAliases.
func NewBuilder(opts ...BuilderOption) Builder {
	b := &builder{logger: zerolog.Nop()}
	WithPersonAliases(DefaultPersonAliases)(b)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildDatabase builds with default options.
func BuildDatabase(raw *RawPayload) (*Database, error) {
	return NewBuilder().Build(raw)
}

// buildState is the scratch state of one Build call.
type buildState struct {
	// canonical person id by folded name
	personByName map[string]string
	// duplicate person id -> canonical person id
	personRemap map[string]string
}

func (b *builder) Build(raw *RawPayload) (*Database, error) {
	if raw == nil || raw.Songs == nil {
		return nil, ErrMissingSongs
	}

	st := &buildState{
		personByName: make(map[string]string),
		personRemap:  make(map[string]string),
	}

	db := &Database{
		Releases:        b.releases(raw.Releases),
		People:          b.people(st, raw.People),
		CreditRoles:     creditRoles(raw.CreditRoles),
		Lyrics:          lyrics(raw.Lyrics),
		SongStats:       b.songStats(raw.SongStats),
		ReleaseArt:      releaseArt(raw.ReleaseArt),
		ArtTypes:        taxa(raw.ArtTypes, func(r NamedRow) Text { return r.ArtTypeID }),
		Distributors:    taxa(raw.Distributors, func(r NamedRow) Text { return r.DistributorID }),
		Labels:          taxa(raw.Labels, func(r NamedRow) Text { return r.LabelID }),
		LyricCategories: categories(raw.LyricCategories),
		Perspectives:    perspectives(raw.Perspectives),
	}
	db.Songs = songs(raw.Songs)
	db.SongCredits = songCredits(st, raw.SongCredits)
	db.ArtCredits = artCredits(st, raw.ArtCredits)
	db.Artwork = artwork(raw.Artwork)

	db.Indexes = buildIndexes(db)

	b.linkArtwork(db)
	covers := b.primaryArtwork(db)
	b.linkSongs(db, covers)

	db.Meta = computeMeta(db)

	b.logger.Debug().
		Int("songs", len(db.Songs)).
		Int("releases", len(db.Releases)).
		Int("people", len(db.People)).
		Int("credits", len(db.SongCredits)).
		Msg("database built")

	return db, nil
}

func songs(rows []SongRow) []*Song {
	out := make([]*Song, 0, len(rows))
	for _, r := range rows {
		title := r.Title.String()
		key := r.Key.String()
		out = append(out, &Song{
			ID:               r.SongID.String(),
			Title:            title,
			ReleaseID:        r.ReleaseID.String(),
			ReleaseDate:      r.ReleaseDate.String(),
			Year:             r.Year.Int(),
			IsPublished:      bool(r.IsPublished),
			IsExplicit:       bool(r.IsExplicit),
			HasVideo:         bool(r.HasVideo),
			LyricsCategoryID: r.LyricsCategoryID.String(),
			PerspectiveID:    r.PerspectiveID.String(),
			DistributorID:    r.DistributorID.String(),
			UploadType:       r.UploadType.String(),
			LabelID:          r.LabelID.String(),
			DurationSec:      float64(r.DurationSec),
			BPM:              float64(r.BPM),
			Key:              key,
			TitleLength:      utf8.RuneCountInString(title),
			KeyQuality:       DeriveKeyQuality(key),
		})
	}
	return out
}

func (b *builder) releases(rows []ReleaseRow) []*Release {
	out := make([]*Release, 0, len(rows))
	for _, r := range rows {
		rel := &Release{
			ID:          r.ReleaseID.String(),
			Title:       r.Title.String(),
			ReleaseType: strings.ToLower(strings.TrimSpace(r.ReleaseType.String())),
			ReleaseDate: r.ReleaseDate.String(),
			Year:        r.Year.Int(),
			IsPublished: bool(r.IsPublished),
			CoverArtID:  r.CoverArtID.String(),
		}
		switch rel.ReleaseType {
		case ReleaseSingle, ReleaseEP, ReleaseAlbum, "":
		default:
			b.logger.Debug().Str("release_id", rel.ID).Str("release_type", rel.ReleaseType).Msg("unrecognized release type")
		}
		out = append(out, rel)
	}
	return out
}

// people canonicalizes person rows by name. The first row seen for a name keeps
// its id; later rows with the same name are dropped and their ids remapped.
func (b *builder) people(st *buildState, rows []PersonRow) []*Person {
	out := make([]*Person, 0, len(rows))
	for _, r := range rows {
		id := r.PersonID.String()
		name := b.canonicalName(r.Name.String())
		key := foldName(name)

		if id != "" && key != "" {
			if canonical, ok := st.personByName[key]; ok {
				if canonical != id {
					st.personRemap[id] = canonical
					b.logger.Debug().Str("person_id", id).Str("canonical_id", canonical).Str("name", name).Msg("merged duplicate person")
				}
				continue
			}
			st.personByName[key] = id
		}

		out = append(out, &Person{ID: id, Name: name})
	}
	return out
}

func (b *builder) canonicalName(name string) string {
	trimmed := strings.TrimSpace(name)
	if alias, ok := b.aliases[foldName(trimmed)]; ok {
		return alias
	}
	return trimmed
}

func foldName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func (st *buildState) personID(id string) string {
	if canonical, ok := st.personRemap[id]; ok {
		return canonical
	}
	return id
}

func creditRoles(rows []CreditRoleRow) []*CreditRole {
	out := make([]*CreditRole, 0, len(rows))
	for _, r := range rows {
		name := r.Name.String()
		kind := ParseRoleKind(name)
		category := RoleCategory(strings.ToLower(strings.TrimSpace(r.Category.String())))
		if category == "" {
			category = kind.Category()
		}
		out = append(out, &CreditRole{
			ID:       r.CreditRoleID.String(),
			Name:     name,
			Category: category,
			Kind:     kind,
		})
	}
	return out
}

func songCredits(st *buildState, rows []SongCreditRow) []*SongCredit {
	out := make([]*SongCredit, 0, len(rows))
	for _, r := range rows {
		out = append(out, &SongCredit{
			ID:       r.SongCreditID.String(),
			SongID:   r.SongID.String(),
			PersonID: st.personID(r.PersonID.String()),
			RoleID:   r.CreditRoleID.String(),
			Detail:   r.CreditDetail.String(),
		})
	}
	return out
}

func artCredits(st *buildState, rows []ArtCreditRow) []*ArtCredit {
	out := make([]*ArtCredit, 0, len(rows))
	for _, r := range rows {
		out = append(out, &ArtCredit{
			ArtID:    r.ArtID.String(),
			PersonID: st.personID(r.PersonID.String()),
			RoleID:   r.CreditRoleID.String(),
		})
	}
	return out
}

func lyrics(rows []LyricsRow) []*Lyrics {
	out := make([]*Lyrics, 0, len(rows))
	for _, r := range rows {
		out = append(out, &Lyrics{SongID: r.SongID.String(), Text: r.LyricsText.String()})
	}
	return out
}

func (b *builder) songStats(rows []SongStatsRow) []*SongStats {
	out := make([]*SongStats, 0, len(rows))
	for _, r := range rows {
		top := make([]WordCount, len(r.TopWordsJSON))
		copy(top, r.TopWordsJSON)
		out = append(out, &SongStats{
			SongID:                r.SongID.String(),
			WordCount:             r.WordCount.Int(),
			UniqueWordCount:       r.UniqueWordCount.Int(),
			TopWords:              top,
			FeaturedVocalistCount: r.FeaturedVocalistCount.Int(),
			HasFeaturedVocalist:   bool(r.HasFeaturedVocalist),
		})
	}
	return out
}

func artwork(rows []ArtworkRow) []*Artwork {
	out := make([]*Artwork, 0, len(rows))
	for _, r := range rows {
		out = append(out, &Artwork{
			ID:          r.ArtID.String(),
			ImageURL:    r.ImageURL.String(),
			Description: r.Description.String(),
			ArtTypeID:   r.ArtTypeID.String(),
			CreatedYear: r.CreatedYear.Int(),
		})
	}
	return out
}

func releaseArt(rows []ReleaseArtRow) []*ReleaseArt {
	out := make([]*ReleaseArt, 0, len(rows))
	for _, r := range rows {
		out = append(out, &ReleaseArt{
			ReleaseID: r.ReleaseID.String(),
			ArtID:     r.ArtID.String(),
			IsPrimary: bool(r.IsPrimary),
		})
	}
	return out
}

func taxa(rows []NamedRow, id func(NamedRow) Text) []*Taxon {
	out := make([]*Taxon, 0, len(rows))
	for _, r := range rows {
		out = append(out, &Taxon{ID: id(r).String(), Name: r.Name.String()})
	}
	return out
}

func categories(rows []LyricCategoryRow) []*Taxon {
	out := make([]*Taxon, 0, len(rows))
	for _, r := range rows {
		out = append(out, &Taxon{ID: r.LyricsCategoryID.String(), Name: r.Name.String()})
	}
	return out
}

func perspectives(rows []PerspectiveRow) []*Taxon {
	out := make([]*Taxon, 0, len(rows))
	for _, r := range rows {
		out = append(out, &Taxon{ID: r.PerspectiveID.String(), Name: r.Name.String()})
	}
	return out
}

// linkArtwork resolves art type names, credits and the first linked release of
// every artwork.
func (b *builder) linkArtwork(db *Database) {
	ix := db.Indexes

	creditsByArt := make(map[string][]*ArtCredit)
	for _, ac := range db.ArtCredits {
		ac.Person = ix.People[ac.PersonID]
		ac.Role = ix.Roles[ac.RoleID]
		creditsByArt[ac.ArtID] = append(creditsByArt[ac.ArtID], ac)
	}

	firstRelease := make(map[string]string)
	for _, ra := range db.ReleaseArt {
		if _, ok := firstRelease[ra.ArtID]; !ok {
			firstRelease[ra.ArtID] = ra.ReleaseID
		}
	}

	for _, art := range db.Artwork {
		if t := ix.ArtTypes[art.ArtTypeID]; t != nil {
			art.ArtTypeName = t.Name
		}
		art.Credits = creditsByArt[art.ID]
		if art.Credits == nil {
			art.Credits = []*ArtCredit{}
		}
		if relID, ok := firstRelease[art.ID]; ok {
			art.Release = ix.Releases[relID]
		}
	}
}

// primaryArtwork picks one cover per release: the first release_art row flagged
// primary whose artwork resolves, else the first resolving row.
func (b *builder) primaryArtwork(db *Database) map[string]*Artwork {
	covers := make(map[string]*Artwork)
	flagged := make(map[string]bool)

	for _, ra := range db.ReleaseArt {
		if ra.ReleaseID == "" {
			continue
		}
		art := db.Indexes.Artwork[ra.ArtID]
		if art == nil {
			continue
		}
		switch {
		case ra.IsPrimary && !flagged[ra.ReleaseID]:
			covers[ra.ReleaseID] = art
			flagged[ra.ReleaseID] = true
		case covers[ra.ReleaseID] == nil:
			covers[ra.ReleaseID] = art
		}
	}
	return covers
}

func (b *builder) linkSongs(db *Database, covers map[string]*Artwork) {
	ix := db.Indexes

	creditsBySong := make(map[string][]*SongCredit)
	for _, c := range db.SongCredits {
		c.Person = ix.People[c.PersonID]
		c.Role = ix.Roles[c.RoleID]
		creditsBySong[c.SongID] = append(creditsBySong[c.SongID], c)
	}

	for _, s := range db.Songs {
		s.Release = ix.Releases[s.ReleaseID]
		if s.Release == nil && s.ReleaseID != "" {
			b.logger.Debug().Str("song_id", s.ID).Str("release_id", s.ReleaseID).Msg("unresolved release")
		}
		if c := ix.Categories[s.LyricsCategoryID]; c != nil {
			s.CategoryName = c.Name
		}
		if p := ix.Perspectives[s.PerspectiveID]; p != nil {
			s.PerspectiveName = p.Name
		}
		if st := ix.Stats[s.ID]; st != nil {
			s.Stats = *st
			s.Stats.TopWords = append([]WordCount{}, st.TopWords...)
		} else {
			s.Stats = SongStats{SongID: s.ID, TopWords: []WordCount{}}
		}
		if l := ix.Lyrics[s.ID]; l != nil {
			s.LyricsText = l.Text
		}
		s.Credits = creditsBySong[s.ID]
		if s.Credits == nil {
			s.Credits = []*SongCredit{}
		}
		s.CoverArt = covers[s.ReleaseID]
	}
}

func computeMeta(db *Database) Meta {
	var (
		years     []int
		seenYears = make(map[int]bool)
		keys      []string
		seenKeys  = make(map[string]bool)
		bpms      []float64
		durations []float64
	)

	for _, s := range db.Songs {
		if s.Year != 0 && !seenYears[s.Year] {
			seenYears[s.Year] = true
			years = append(years, s.Year)
		}
		if s.Key != "" && !seenKeys[s.Key] {
			seenKeys[s.Key] = true
			keys = append(keys, s.Key)
		}
		if s.BPM != 0 {
			bpms = append(bpms, s.BPM)
		}
		if s.DurationSec != 0 {
			durations = append(durations, s.DurationSec)
		}
	}
	sort.Ints(years)
	sort.Strings(keys)

	var wordCounts []int
	for _, st := range db.SongStats {
		if st.WordCount != 0 {
			wordCounts = append(wordCounts, st.WordCount)
		}
	}

	if years == nil {
		years = []int{}
	}
	if keys == nil {
		keys = []string{}
	}

	return Meta{
		Years:          years,
		AllKeys:        keys,
		BPMRange:       valueRange(bpms),
		WordCountRange: valueRange(wordCounts),
		DurationRange:  valueRange(durations),
		TotalSongs:     len(db.Songs),
	}
}

// valueRange returns [min, max], or [0, 0] for no values.
func valueRange[T int | float64](values []T) [2]T {
	if len(values) == 0 {
		return [2]T{}
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return [2]T{lo, hi}
}
