package discography

import "strings"

// RoleKind is the closed set of credit roles. Role names from the sheet are
// resolved to a RoleKind once, at build time.
type RoleKind string

const (
	RoleMixing          RoleKind = "mixing"
	RoleMastering       RoleKind = "mastering"
	RoleProduction      RoleKind = "production"
	RoleFeaturedVocals  RoleKind = "featured_vocals"
	RoleGuitar          RoleKind = "guitar"
	RoleBass            RoleKind = "bass"
	RoleSynths          RoleKind = "synths"
	RoleUkulele         RoleKind = "ukulele"
	RoleBackingVocals   RoleKind = "backing_vocals"
	RolePhotographer    RoleKind = "photographer"
	RoleDesigner        RoleKind = "designer"
	Role3DArtist        RoleKind = "3d_artist"
	RoleDigitalArtist   RoleKind = "digital_artist"
	RoleGraphicDesigner RoleKind = "graphic_designer"
	RoleIllustrator     RoleKind = "illustrator"

	// RoleOther covers names outside the taxonomy.
	RoleOther RoleKind = "other"
)

// RoleCategory groups credit roles.
type RoleCategory string

const (
	CategoryAudio       RoleCategory = "audio"
	CategoryPerformance RoleCategory = "performance"
	CategoryVisual      RoleCategory = "visual"
)

// RoleCategories lists the known roles per category, in display order.
var RoleCategories = map[RoleCategory][]RoleKind{
	CategoryAudio:       {RoleMixing, RoleMastering, RoleProduction},
	CategoryPerformance: {RoleFeaturedVocals, RoleGuitar, RoleBass, RoleSynths, RoleUkulele, RoleBackingVocals},
	CategoryVisual:      {RolePhotographer, RoleDesigner, Role3DArtist, RoleDigitalArtist, RoleGraphicDesigner, RoleIllustrator},
}

var roleCategoryOf = func() map[RoleKind]RoleCategory {
	m := make(map[RoleKind]RoleCategory)
	for cat, roles := range RoleCategories {
		for _, r := range roles {
			m[r] = cat
		}
	}
	return m
}()

// ParseRoleKind resolves a role name. Matching ignores case and surrounding
// whitespace, and treats spaces like underscores.
func ParseRoleKind(name string) RoleKind {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, " ", "_")
	if _, ok := roleCategoryOf[RoleKind(n)]; ok {
		return RoleKind(n)
	}
	return RoleOther
}

// Category returns the taxonomy category of a known role, or "" for RoleOther.
func (k RoleKind) Category() RoleCategory {
	return roleCategoryOf[k]
}

// KeyQuality is the major/minor classification of a musical key.
type KeyQuality string

const (
	KeyMajor KeyQuality = "major"
	KeyMinor KeyQuality = "minor"
)

// DeriveKeyQuality classifies a key string. A key containing "minor" or ending
// in "m" is minor; everything else is major, including empty and unrecognized keys.
// The key is not trimmed, so "Am " is major.
func DeriveKeyQuality(key string) KeyQuality {
	lower := strings.ToLower(key)
	if strings.Contains(lower, "minor") || strings.HasSuffix(lower, "m") {
		return KeyMinor
	}
	return KeyMajor
}

// CategoryList is the lyric category taxonomy in display order.
var CategoryList = []string{
	"Love & Romance (Positive)",
	"Love & Romance (Negative)",
	"Social Commentary",
	"Narrative / Storytime",
	"Philosophical",
	"Reflective",
}

// PerspectiveList is the narrative perspective taxonomy in display order.
var PerspectiveList = []string{
	"First person exclusively",
	"Third person exclusively",
	"Both (first + third)",
	"Both (first + second framed socially)",
}

// ArtTypes is the artwork type taxonomy.
var ArtTypes = []string{
	"rendered",
	"composited",
	"still",
	"graphic_design",
	"illustration",
}

// ReleaseType values.
const (
	ReleaseSingle = "single"
	ReleaseEP     = "ep"
	ReleaseAlbum  = "album"
)
