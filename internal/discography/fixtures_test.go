package discography

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fixturePayload mimics the sheet endpoint: stringified numbers and booleans,
// a malformed top_words_json, an unresolved release, alias and case variants of
// the same people, and several release_art rows for one release.
const fixturePayload = `{
  "songs": [
    {"song_id": "s-001", "title": "Breathe", "release_id": "rel-001", "release_date": "2020-01-01",
     "year": "2020", "is_published": "TRUE", "is_explicit": "no", "has_video": false,
     "lyrics_category_id": "cat-05", "perspective_id": "per-01", "distributor_id": "dist-01",
     "label_id": "", "duration_sec": 200, "bpm": "120", "key": "C"},
    {"song_id": "s-002", "title": "Need You Here", "release_id": "rel-002", "release_date": "2021-01-01",
     "year": 2021, "is_published": true, "is_explicit": "yes", "has_video": "1",
     "lyrics_category_id": "cat-03", "perspective_id": "per-02", "distributor_id": "dist-01",
     "label_id": "lbl-01", "duration_sec": "181", "bpm": 90, "key": "Am"},
    {"song_id": "s-003", "title": "Moving", "release_id": "rel-003", "release_date": "2021-06-01",
     "year": 2021, "is_published": "false", "is_explicit": false, "has_video": null,
     "lyrics_category_id": "cat-05", "perspective_id": "per-01", "duration_sec": 0, "bpm": 0, "key": "C"},
    {"song_id": "s-004", "title": "Ghost", "release_id": "rel-999", "year": 2023,
     "is_published": "yes", "is_explicit": "1", "lyrics_category_id": "", "perspective_id": null,
     "duration_sec": 240, "bpm": "abc", "key": null}
  ],
  "releases": [
    {"release_id": "rel-001", "title": "Breathe", "release_type": "single", "release_date": "2020-01-01", "year": 2020},
    {"release_id": "rel-002", "title": "Need You Here", "release_type": "single", "release_date": "2021-01-01", "year": "2021"},
    {"release_id": "rel-003", "title": "Paper Town", "release_type": "album", "release_date": "2021-06-01", "year": 2021}
  ],
  "people": [
    {"person_id": "p-001", "name": "Amir"},
    {"person_id": "p-002", "name": "Nicky V Hines"},
    {"person_id": "p-003", "name": "Amir B"},
    {"person_id": "p-004", "name": "  nicky v hines "}
  ],
  "credit_roles": [
    {"credit_role_id": "role-01", "name": "mixing", "category": "audio"},
    {"credit_role_id": "role-02", "name": "mastering", "category": "audio"},
    {"credit_role_id": "role-03", "name": "featured_vocals", "category": "performance"},
    {"credit_role_id": "role-04", "name": "guitar", "category": "performance"},
    {"credit_role_id": "role-10", "name": "photographer", "category": "visual"}
  ],
  "song_credits": [
    {"song_credit_id": "sc-0001", "song_id": "s-001", "person_id": "p-001", "credit_role_id": "role-01", "credit_detail": ""},
    {"song_credit_id": "sc-0002", "song_id": "s-001", "person_id": "p-001", "credit_role_id": "role-02", "credit_detail": ""},
    {"song_credit_id": "sc-0003", "song_id": "s-002", "person_id": "p-003", "credit_role_id": "role-03", "credit_detail": ""},
    {"song_credit_id": "sc-0004", "song_id": "s-002", "person_id": "p-002", "credit_role_id": "role-04", "credit_detail": "Guitar"},
    {"song_credit_id": "sc-0005", "song_id": "s-003", "person_id": "p-004", "credit_role_id": "role-01", "credit_detail": ""}
  ],
  "lyrics": [
    {"song_id": "s-001", "lyrics_text": "Breathe in, breathe out. The love love love we share"},
    {"song_id": "s-002", "lyrics_text": "A+B is not a plus b, a+b again. Love and hate"},
    {"song_id": "s-004", "lyrics_text": ""}
  ],
  "song_stats": [
    {"song_id": "s-001", "word_count": 10, "unique_word_count": 4,
     "top_words_json": "[{\"word\":\"love\",\"count\":3},{\"word\":\"breathe\",\"count\":2}]",
     "featured_vocalist_count": 0, "has_featured_vocalist": false},
    {"song_id": "s-002", "word_count": "12", "unique_word_count": "6", "top_words_json": "not json",
     "featured_vocalist_count": "1", "has_featured_vocalist": "true"},
    {"song_id": "s-004", "word_count": 0, "unique_word_count": 0, "top_words_json": "",
     "featured_vocalist_count": 0, "has_featured_vocalist": false}
  ],
  "artwork": [
    {"art_id": "art-001", "image_url": "https://example.com/a.jpg", "description": "Cover", "art_type_id": "atype-01", "created_year": 2020},
    {"art_id": "art-002", "image_url": "", "description": "Alt", "art_type_id": "atype-03", "created_year": "2020"},
    {"art_id": "art-003", "image_url": "", "description": "Single art", "art_type_id": "atype-02", "created_year": 2021}
  ],
  "release_art": [
    {"release_id": "rel-001", "art_id": "art-002", "is_primary": false},
    {"release_id": "rel-001", "art_id": "art-001", "is_primary": "true"},
    {"release_id": "rel-002", "art_id": "art-003", "is_primary": false},
    {"release_id": "rel-001", "art_id": "art-003", "is_primary": true},
    {"release_id": "rel-003", "art_id": "art-missing", "is_primary": true}
  ],
  "art_credits": [
    {"art_id": "art-001", "person_id": "p-003", "credit_role_id": "role-10"}
  ],
  "art_types": [
    {"art_type_id": "atype-01", "name": "rendered"},
    {"art_type_id": "atype-02", "name": "composited"},
    {"art_type_id": "atype-03", "name": "still"}
  ],
  "distributors": [{"distributor_id": "dist-01", "name": "Soundrop"}],
  "labels": [{"label_id": "lbl-01", "name": "GNIX"}],
  "lyric_categories": [
    {"lyrics_category_id": "cat-01", "name": "Love & Romance (Positive)"},
    {"lyrics_category_id": "cat-03", "name": "Social Commentary"},
    {"lyrics_category_id": "cat-05", "name": "Philosophical"}
  ],
  "perspectives": [
    {"perspective_id": "per-01", "name": "First person exclusively"},
    {"perspective_id": "per-02", "name": "Third person exclusively"}
  ]
}`

func fixtureRaw(t *testing.T) *RawPayload {
	t.Helper()
	raw, err := DecodePayloadBytes([]byte(fixturePayload))
	require.NoError(t, err)
	return raw
}

func fixtureDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewBuilder().Build(fixtureRaw(t))
	require.NoError(t, err)
	return db
}

func boolPtr(b bool) *bool {
	return &b
}

func songIDs(songs []*Song) []string {
	ids := make([]string, len(songs))
	for i, s := range songs {
		ids[i] = s.ID
	}
	return ids
}
