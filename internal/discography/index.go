package discography

// indexBy maps each item to its id in a single pass. Items with an empty id are
// skipped; a later item with the same id replaces an earlier one.
func indexBy[T any](items []T, id func(T) string) map[string]T {
	m := make(map[string]T, len(items))
	for _, item := range items {
		key := id(item)
		if key == "" {
			continue
		}
		m[key] = item
	}
	return m
}

func buildIndexes(db *Database) Indexes {
	return Indexes{
		Songs:        indexBy(db.Songs, func(s *Song) string { return s.ID }),
		Releases:     indexBy(db.Releases, func(r *Release) string { return r.ID }),
		People:       indexBy(db.People, func(p *Person) string { return p.ID }),
		Roles:        indexBy(db.CreditRoles, func(r *CreditRole) string { return r.ID }),
		Categories:   indexBy(db.LyricCategories, func(t *Taxon) string { return t.ID }),
		Perspectives: indexBy(db.Perspectives, func(t *Taxon) string { return t.ID }),
		Stats:        indexBy(db.SongStats, func(s *SongStats) string { return s.SongID }),
		Lyrics:       indexBy(db.Lyrics, func(l *Lyrics) string { return l.SongID }),
		Artwork:      indexBy(db.Artwork, func(a *Artwork) string { return a.ID }),
		ArtTypes:     indexBy(db.ArtTypes, func(t *Taxon) string { return t.ID }),
	}
}
