package discography

// PersonStats is the rollup of one person's song credits.
type PersonStats struct {
	Person        *Person             `json:"person"`
	TotalSongs    int                 `json:"total_songs"`
	TotalCredits  int                 `json:"total_credits"`
	RoleBreakdown map[string][]string `json:"role_breakdown"`
	RoleOrder     []string            `json:"role_order"` // RoleBreakdown keys in first-credit order
	Songs         []*Song             `json:"songs"`
	Credits       []*SongCredit       `json:"credits"`
}

// GetPersonStats rolls up the song credits of personID. TotalSongs counts
// distinct songs; RoleBreakdown maps each role name (the role id when the role
// does not resolve) to the distinct song ids credited under it. Person is nil
// for an unknown id.
func GetPersonStats(db *Database, personID string) PersonStats {
	stats := PersonStats{
		Person:        db.Indexes.People[personID],
		RoleBreakdown: map[string][]string{},
		RoleOrder:     []string{},
		Songs:         []*Song{},
		Credits:       []*SongCredit{},
	}

	seenSongs := make(map[string]bool)
	var songIDs []string
	seenRoleSong := make(map[string]map[string]bool)

	for _, c := range db.SongCredits {
		if c.PersonID != personID {
			continue
		}
		stats.Credits = append(stats.Credits, c)

		if !seenSongs[c.SongID] {
			seenSongs[c.SongID] = true
			songIDs = append(songIDs, c.SongID)
		}

		roleName := c.RoleID
		if role := db.Indexes.Roles[c.RoleID]; role != nil {
			roleName = role.Name
		}
		if seenRoleSong[roleName] == nil {
			seenRoleSong[roleName] = make(map[string]bool)
			stats.RoleOrder = append(stats.RoleOrder, roleName)
		}
		if !seenRoleSong[roleName][c.SongID] {
			seenRoleSong[roleName][c.SongID] = true
			stats.RoleBreakdown[roleName] = append(stats.RoleBreakdown[roleName], c.SongID)
		}
	}

	stats.TotalSongs = len(songIDs)
	stats.TotalCredits = len(stats.Credits)
	for _, id := range songIDs {
		if s := db.Indexes.Songs[id]; s != nil {
			stats.Songs = append(stats.Songs, s)
		}
	}
	return stats
}
