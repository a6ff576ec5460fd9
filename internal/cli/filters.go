package cli

import (
	"github.com/mvp-joe/discograph/internal/discography"
	"github.com/spf13/cobra"
)

// filterFlags holds the song filter flags shared by songs and stats.
type filterFlags struct {
	years        []int
	releases     []string
	categories   []string
	perspectives []string
	keys         []string
	people       []string
	keyQuality   string
	query        string
	lyric        string

	published, explicit, video, featured string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntSliceVar(&f.years, "year", nil, "release years (repeatable)")
	fl.StringSliceVar(&f.releases, "release", nil, "release ids")
	fl.StringSliceVar(&f.categories, "category", nil, "lyric category names")
	fl.StringSliceVar(&f.perspectives, "perspective", nil, "perspective names")
	fl.StringSliceVar(&f.keys, "key", nil, "musical keys")
	fl.StringSliceVar(&f.people, "person", nil, "credited person ids")
	fl.StringVar(&f.keyQuality, "key-quality", discography.KeyQualityAll, "all, major or minor")
	fl.StringVar(&f.query, "search", "", "substring match over title, release, people and metadata")
	fl.StringVar(&f.lyric, "lyric", "", "substring match over lyrics")
	fl.StringVar(&f.published, "published", "", "true or false")
	fl.StringVar(&f.explicit, "explicit", "", "true or false")
	fl.StringVar(&f.video, "video", "", "true or false")
	fl.StringVar(&f.featured, "featured", "", "true or false")
}

// spec converts the flags to a FilterSpec. Tri-state flags left empty impose
// no constraint.
func (f *filterFlags) spec() (discography.FilterSpec, error) {
	spec := discography.FilterSpec{
		Years:        f.years,
		Releases:     f.releases,
		Categories:   f.categories,
		Perspectives: f.perspectives,
		Keys:         f.keys,
		People:       f.people,
		KeyQuality:   f.keyQuality,
		SearchQuery:  f.query,
		LyricSearch:  f.lyric,
	}

	var err error
	if spec.IsPublished, err = parseTriState("published", f.published); err != nil {
		return spec, err
	}
	if spec.IsExplicit, err = parseTriState("explicit", f.explicit); err != nil {
		return spec, err
	}
	if spec.HasVideo, err = parseTriState("video", f.video); err != nil {
		return spec, err
	}
	if spec.HasFeatured, err = parseTriState("featured", f.featured); err != nil {
		return spec, err
	}

	switch spec.KeyQuality {
	case "", discography.KeyQualityAll, "major", "minor":
	default:
		return spec, &flagError{flag: "key-quality", value: spec.KeyQuality, want: "all, major or minor"}
	}
	return spec, nil
}
