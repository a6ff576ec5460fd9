package discography

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for GetPersonStats:
// - Counts distinct songs and all credits of a person
// - RoleBreakdown lists distinct song ids per role in first-credit order
// - Credits merged from duplicate person rows count toward the surviving id
// - Unknown ids return a nil person with empty, non-nil collections

func TestGetPersonStats_Rollup(t *testing.T) {
	t.Parallel()
	db := fixtureDB(t)

	stats := GetPersonStats(db, "p-001")
	require.NotNil(t, stats.Person)
	assert.Equal(t, "Amir", stats.Person.Name)
	assert.Equal(t, 2, stats.TotalSongs)
	assert.Equal(t, 3, stats.TotalCredits)
	assert.Equal(t, []string{"mixing", "mastering", "featured_vocals"}, stats.RoleOrder)
	assert.Equal(t, map[string][]string{
		"mixing":          {"s-001"},
		"mastering":       {"s-001"},
		"featured_vocals": {"s-002"},
	}, stats.RoleBreakdown)
	assert.Equal(t, []string{"s-001", "s-002"}, songIDs(stats.Songs))
}

func TestGetPersonStats_DistinctSongsPerRole(t *testing.T) {
	t.Parallel()

	db := &Database{
		SongCredits: []*SongCredit{
			{ID: "c1", SongID: "s1", PersonID: "p1", RoleID: "r1"},
			{ID: "c2", SongID: "s1", PersonID: "p1", RoleID: "r1"},
			{ID: "c3", SongID: "s2", PersonID: "p1", RoleID: "r-unknown"},
			{ID: "c4", SongID: "s2", PersonID: "p2", RoleID: "r1"},
		},
		Indexes: Indexes{
			People: map[string]*Person{"p1": {ID: "p1", Name: "One"}},
			Roles:  map[string]*CreditRole{"r1": {ID: "r1", Name: "guitar"}},
			Songs:  map[string]*Song{"s1": {ID: "s1"}},
		},
	}

	stats := GetPersonStats(db, "p1")
	assert.Equal(t, 2, stats.TotalSongs)
	assert.Equal(t, 3, stats.TotalCredits)
	assert.Equal(t, []string{"s1"}, stats.RoleBreakdown["guitar"])
	assert.Equal(t, []string{"s2"}, stats.RoleBreakdown["r-unknown"], "unresolved roles keyed by id")
	assert.Equal(t, []string{"s1"}, songIDs(stats.Songs), "unresolved songs are skipped")
}

func TestGetPersonStats_UnknownPerson(t *testing.T) {
	t.Parallel()
	db := fixtureDB(t)

	stats := GetPersonStats(db, "p-404")
	assert.Nil(t, stats.Person)
	assert.Equal(t, 0, stats.TotalSongs)
	assert.Equal(t, 0, stats.TotalCredits)
	assert.NotNil(t, stats.RoleBreakdown)
	assert.Empty(t, stats.RoleBreakdown)
	assert.Equal(t, []*Song{}, stats.Songs)
	assert.Equal(t, []*SongCredit{}, stats.Credits)
}
