package discography

import (
	"encoding/json"
	"fmt"
	"io"
)

// RawPayload is the bag of flat row collections served by the sheet endpoint.
// A nil collection means the key was absent (or null) in the source.
type RawPayload struct {
	Songs           []SongRow          `json:"songs"`
	Releases        []ReleaseRow       `json:"releases"`
	People          []PersonRow        `json:"people"`
	SongCredits     []SongCreditRow    `json:"song_credits"`
	CreditRoles     []CreditRoleRow    `json:"credit_roles"`
	Lyrics          []LyricsRow        `json:"lyrics"`
	SongStats       []SongStatsRow     `json:"song_stats"`
	Artwork         []ArtworkRow       `json:"artwork"`
	ReleaseArt      []ReleaseArtRow    `json:"release_art"`
	ArtCredits      []ArtCreditRow     `json:"art_credits"`
	ArtTypes        []NamedRow         `json:"art_types"`
	Distributors    []NamedRow         `json:"distributors"`
	Labels          []NamedRow         `json:"labels"`
	LyricCategories []LyricCategoryRow `json:"lyric_categories"`
	Perspectives    []PerspectiveRow   `json:"perspectives"`
}

// SongRow is one row of the songs sheet.
type SongRow struct {
	SongID           Text   `json:"song_id"`
	Title            Text   `json:"title"`
	ReleaseID        Text   `json:"release_id"`
	ReleaseDate      Text   `json:"release_date"`
	Year             Number `json:"year"`
	IsPublished      Flag   `json:"is_published"`
	IsExplicit       Flag   `json:"is_explicit"`
	HasVideo         Flag   `json:"has_video"`
	LyricsCategoryID Text   `json:"lyrics_category_id"`
	PerspectiveID    Text   `json:"perspective_id"`
	DistributorID    Text   `json:"distributor_id"`
	UploadType       Text   `json:"upload_type"`
	LabelID          Text   `json:"label_id"`
	DurationSec      Number `json:"duration_sec"`
	BPM              Number `json:"bpm"`
	Key              Text   `json:"key"`
}

// ReleaseRow is one row of the releases sheet.
type ReleaseRow struct {
	ReleaseID   Text   `json:"release_id"`
	Title       Text   `json:"title"`
	ReleaseType Text   `json:"release_type"`
	ReleaseDate Text   `json:"release_date"`
	Year        Number `json:"year"`
	IsPublished Flag   `json:"is_published"`
	CoverArtID  Text   `json:"cover_art_id"`
}

// PersonRow is one row of the people sheet.
type PersonRow struct {
	PersonID Text `json:"person_id"`
	Name     Text `json:"name"`
}

// SongCreditRow links a song, a person and a role.
type SongCreditRow struct {
	SongCreditID Text `json:"song_credit_id"`
	SongID       Text `json:"song_id"`
	PersonID     Text `json:"person_id"`
	CreditRoleID Text `json:"credit_role_id"`
	CreditDetail Text `json:"credit_detail"`
}

// CreditRoleRow is one entry of the credit role taxonomy.
type CreditRoleRow struct {
	CreditRoleID Text `json:"credit_role_id"`
	Name         Text `json:"name"`
	Category     Text `json:"category"`
}

// LyricsRow holds the lyrics body of one song.
type LyricsRow struct {
	SongID     Text `json:"song_id"`
	LyricsText Text `json:"lyrics_text"`
}

// SongStatsRow holds the precomputed statistics of one song.
type SongStatsRow struct {
	SongID                Text     `json:"song_id"`
	WordCount             Number   `json:"word_count"`
	UniqueWordCount       Number   `json:"unique_word_count"`
	TopWordsJSON          TopWords `json:"top_words_json"`
	FeaturedVocalistCount Number   `json:"featured_vocalist_count"`
	HasFeaturedVocalist   Flag     `json:"has_featured_vocalist"`
}

// ArtworkRow is one row of the artwork sheet.
type ArtworkRow struct {
	ArtID       Text   `json:"art_id"`
	ImageURL    Text   `json:"image_url"`
	Description Text   `json:"description"`
	ArtTypeID   Text   `json:"art_type_id"`
	CreatedYear Number `json:"created_year"`
}

// ReleaseArtRow joins a release to an artwork.
type ReleaseArtRow struct {
	ReleaseID Text `json:"release_id"`
	ArtID     Text `json:"art_id"`
	IsPrimary Flag `json:"is_primary"`
}

// ArtCreditRow links an artwork, a person and a role.
type ArtCreditRow struct {
	ArtID        Text `json:"art_id"`
	PersonID     Text `json:"person_id"`
	CreditRoleID Text `json:"credit_role_id"`
}

// NamedRow is the shape shared by the art type, distributor and label taxonomies.
// Only one of the id columns is populated for a given collection.
type NamedRow struct {
	ArtTypeID     Text `json:"art_type_id"`
	DistributorID Text `json:"distributor_id"`
	LabelID       Text `json:"label_id"`
	Name          Text `json:"name"`
}

// LyricCategoryRow is one entry of the lyric category taxonomy.
type LyricCategoryRow struct {
	LyricsCategoryID Text `json:"lyrics_category_id"`
	Name             Text `json:"name"`
}

// PerspectiveRow is one entry of the perspective taxonomy.
type PerspectiveRow struct {
	PerspectiveID Text `json:"perspective_id"`
	Name          Text `json:"name"`
}

// DecodePayload reads a JSON payload.
func DecodePayload(r io.Reader) (*RawPayload, error) {
	var raw RawPayload
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return &raw, nil
}

// DecodePayloadBytes is DecodePayload over an in-memory document.
func DecodePayloadBytes(data []byte) (*RawPayload, error) {
	var raw RawPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return &raw, nil
}
