package track

import (
	"github.com/askiada/go-binarytrack/pkg/track/model"
)

const (
	profilesEntry = "profiles"
	legendEntry   = "profile_legend"
	// LegendKey is the name under which the profile legend is attached to the profiles.
	LegendKey = "legend"
)

// ExtractProfiles returns the profiles of c with the profile legend attached under
// LegendKey, or false when c has no profiles. A file without a legend gets an empty
// *model.Attribute under LegendKey. A profiles table is returned wrapped in a
// container under its own name. c is not modified.
func ExtractProfiles(c *model.Container) (*model.Container, bool) {
	node, ok := c.Get(profilesEntry)
	if !ok {
		return nil, false
	}

	var res *model.Container
	switch n := node.(type) {
	case *model.Container:
		res = n.ShallowCopy()
	default:
		res = model.NewContainer()
		res.Set(profilesEntry, n)
	}

	legend, ok := c.Get(legendEntry)
	if !ok {
		legend = &model.Attribute{}
	}
	res.Set(LegendKey, legend)

	return res, true
}
