package profiles

import (
	"fmt"

	"biocard-backend/internal/assets"
)

// Blob categories, one per asset-bearing field role. Used for bulk cleanup
// and storage accounting.
const (
	CategoryAvatar      = "avatar"
	CategoryBackground  = "background"
	CategoryQRCode      = "qrcode"
	CategoryProjectLogo = "project_logo"
	CategoryGallery     = "gallery_image"
	CategoryWorkLogo    = "work_logo"
	CategorySchoolLogo  = "school_logo"
)

// AssetField is one asset-bearing field of a document: its location, its
// role, and accessors that rewrite it in place.
type AssetField struct {
	Path      string
	Category  string
	ImageOnly bool
	Value     func() string
	Set       func(string)
}

// AssetFields enumerates every asset-bearing field of the document in a
// fixed order: scalars first, then sub-item arrays in declaration order.
// Setters write through to the receiver, preserving sibling items.
func (p *Profile) AssetFields() []AssetField {
	fields := []AssetField{
		{
			Path:     "avatar",
			Category: CategoryAvatar,
			Value:    func() string { return p.Avatar },
			Set:      func(v string) { p.Avatar = v },
		},
		{
			Path:     "background",
			Category: CategoryBackground,
			Value:    func() string { return p.Background },
			Set:      func(v string) { p.Background = v },
		},
	}
	for i := range p.Contacts {
		item := &p.Contacts[i]
		fields = append(fields, AssetField{
			Path:     fmt.Sprintf("contacts[%d].image", i),
			Category: CategoryQRCode,
			Value:    func() string { return item.Image },
			Set:      func(v string) { item.Image = v },
		})
	}
	for i := range p.Projects {
		item := &p.Projects[i]
		fields = append(fields, AssetField{
			Path:     fmt.Sprintf("projects[%d].logo", i),
			Category: CategoryProjectLogo,
			Value:    func() string { return item.Logo },
			Set:      func(v string) { item.Logo = v },
		})
	}
	for i := range p.Gallery {
		item := &p.Gallery[i]
		fields = append(fields, AssetField{
			Path:     fmt.Sprintf("gallery[%d].image", i),
			Category: CategoryGallery,
			Value:    func() string { return item.Image },
			Set:      func(v string) { item.Image = v },
		})
	}
	for i := range p.WorkExperiences {
		item := &p.WorkExperiences[i]
		fields = append(fields, AssetField{
			Path:      fmt.Sprintf("workExperiences[%d].logo", i),
			Category:  CategoryWorkLogo,
			ImageOnly: true,
			Value:     func() string { return item.Logo },
			Set:       func(v string) { item.Logo = v },
		})
	}
	for i := range p.Educations {
		item := &p.Educations[i]
		fields = append(fields, AssetField{
			Path:      fmt.Sprintf("educations[%d].logo", i),
			Category:  CategorySchoolLogo,
			ImageOnly: true,
			Value:     func() string { return item.Logo },
			Set:       func(v string) { item.Logo = v },
		})
	}
	return fields
}

// ReferenceFields enumerates only the fields currently holding a reference
// token. The restore path touches nothing else.
func (p *Profile) ReferenceFields() []AssetField {
	var refs []AssetField
	for _, f := range p.AssetFields() {
		if assets.IsReferenceToken(f.Value()) {
			refs = append(refs, f)
		}
	}
	return refs
}
