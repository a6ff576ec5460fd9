package discography

// Song is a normalized song with its references resolved.
type Song struct {
	ID               string     `json:"song_id"`
	Title            string     `json:"title"`
	ReleaseID        string     `json:"release_id"`
	ReleaseDate      string     `json:"release_date"`
	Year             int        `json:"year"`
	IsPublished      bool       `json:"is_published"`
	IsExplicit       bool       `json:"is_explicit"`
	HasVideo         bool       `json:"has_video"`
	LyricsCategoryID string     `json:"lyrics_category_id"`
	PerspectiveID    string     `json:"perspective_id"`
	DistributorID    string     `json:"distributor_id"`
	UploadType       string     `json:"upload_type"`
	LabelID          string     `json:"label_id"` // empty means independent
	DurationSec      float64    `json:"duration_sec"`
	BPM              float64    `json:"bpm"` // 0 means unknown
	Key              string     `json:"key"`
	TitleLength      int        `json:"title_length"`
	KeyQuality       KeyQuality `json:"key_quality"`

	Release         *Release      `json:"release,omitempty"` // nil when release_id does not resolve
	CategoryName    string        `json:"category_name"`
	PerspectiveName string        `json:"perspective_name"`
	Stats           SongStats     `json:"stats"`
	LyricsText      string        `json:"lyrics_text"`
	Credits         []*SongCredit `json:"credits"`
	CoverArt        *Artwork      `json:"cover_art,omitempty"`
}

// HasFeatured reports whether the song credits at least one featured vocalist.
func (s *Song) HasFeatured() bool {
	return s.Stats.FeaturedVocalistCount > 0 || s.Stats.HasFeaturedVocalist
}

// IsIndependent reports whether the song was released without a label.
func (s *Song) IsIndependent() bool {
	return s.LabelID == ""
}

// Release is a single, EP or album.
type Release struct {
	ID          string `json:"release_id"`
	Title       string `json:"title"`
	ReleaseType string `json:"release_type"`
	ReleaseDate string `json:"release_date"`
	Year        int    `json:"year"`
	IsPublished bool   `json:"is_published"`
	CoverArtID  string `json:"cover_art_id,omitempty"`
}

// Person is a canonical credited person.
type Person struct {
	ID   string `json:"person_id"`
	Name string `json:"name"`
}

// CreditRole is an entry of the credit role taxonomy with its resolved kind.
type CreditRole struct {
	ID       string       `json:"credit_role_id"`
	Name     string       `json:"name"`
	Category RoleCategory `json:"category"`
	Kind     RoleKind     `json:"kind"`
}

// SongCredit links a song to a person in a role. Person and Role are nil when
// the referenced ids do not resolve.
type SongCredit struct {
	ID       string      `json:"song_credit_id"`
	SongID   string      `json:"song_id"`
	PersonID string      `json:"person_id"`
	RoleID   string      `json:"credit_role_id"`
	Detail   string      `json:"credit_detail"`
	Person   *Person     `json:"person,omitempty"`
	Role     *CreditRole `json:"role,omitempty"`
}

// RoleKind returns the resolved role kind, or RoleOther when the role is unknown.
func (c *SongCredit) RoleKind() RoleKind {
	if c.Role == nil {
		return RoleOther
	}
	return c.Role.Kind
}

// RoleName returns the role name, or "" when the role is unknown.
func (c *SongCredit) RoleName() string {
	if c.Role == nil {
		return ""
	}
	return c.Role.Name
}

// PersonName returns the credited person's name, or "" when unresolved.
func (c *SongCredit) PersonName() string {
	if c.Person == nil {
		return ""
	}
	return c.Person.Name
}

// Lyrics is the lyrics body of one song.
type Lyrics struct {
	SongID string `json:"song_id"`
	Text   string `json:"lyrics_text"`
}

// WordCount is a word and its frequency.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// SongStats are the precomputed lyric statistics of one song.
type SongStats struct {
	SongID                string      `json:"song_id"`
	WordCount             int         `json:"word_count"`
	UniqueWordCount       int         `json:"unique_word_count"`
	TopWords              []WordCount `json:"top_words"`
	FeaturedVocalistCount int         `json:"featured_vocalist_count"`
	HasFeaturedVocalist   bool        `json:"has_featured_vocalist"`
}

// Artwork is a piece of release art with its type and credits resolved.
type Artwork struct {
	ID          string       `json:"art_id"`
	ImageURL    string       `json:"image_url"`
	Description string       `json:"description"`
	ArtTypeID   string       `json:"art_type_id"`
	CreatedYear int          `json:"created_year"`
	ArtTypeName string       `json:"art_type_name"`
	Credits     []*ArtCredit `json:"credits"`
	Release     *Release     `json:"release,omitempty"` // first linked release
}

// ReleaseArt joins a release to an artwork.
type ReleaseArt struct {
	ReleaseID string `json:"release_id"`
	ArtID     string `json:"art_id"`
	IsPrimary bool   `json:"is_primary"`
}

// ArtCredit links an artwork to a person in a role.
type ArtCredit struct {
	ArtID    string      `json:"art_id"`
	PersonID string      `json:"person_id"`
	RoleID   string      `json:"credit_role_id"`
	Person   *Person     `json:"person,omitempty"`
	Role     *CreditRole `json:"role,omitempty"`
}

// Taxon is an entry of a small closed taxonomy (lyric category, perspective,
// art type, distributor, label).
type Taxon struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Meta holds facts derived once per build.
type Meta struct {
	Years          []int      `json:"years"`
	AllKeys        []string   `json:"all_keys"`
	BPMRange       [2]float64 `json:"bpm_range"`
	WordCountRange [2]int     `json:"word_count_range"`
	DurationRange  [2]float64 `json:"duration_range"`
	TotalSongs     int        `json:"total_songs"`
}

// Indexes map entity ids to entities. Rows with an empty id are not indexed.
type Indexes struct {
	Songs        map[string]*Song
	Releases     map[string]*Release
	People       map[string]*Person
	Roles        map[string]*CreditRole
	Categories   map[string]*Taxon
	Perspectives map[string]*Taxon
	Stats        map[string]*SongStats
	Lyrics       map[string]*Lyrics
	Artwork      map[string]*Artwork
	ArtTypes     map[string]*Taxon
}

// Database is the normalized, cross-referenced graph built from one payload.
// It is read-only once built.
type Database struct {
	Songs           []*Song
	Releases        []*Release
	People          []*Person
	SongCredits     []*SongCredit
	CreditRoles     []*CreditRole
	Lyrics          []*Lyrics
	SongStats       []*SongStats
	Artwork         []*Artwork
	ReleaseArt      []*ReleaseArt
	ArtCredits      []*ArtCredit
	ArtTypes        []*Taxon
	Distributors    []*Taxon
	Labels          []*Taxon
	LyricCategories []*Taxon
	Perspectives    []*Taxon

	Indexes Indexes
	Meta    Meta
}
