package profiles

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the user-facing profile document. Asset-bearing string fields
// (avatar, background, images, logos) hold plain text, an inline data URI,
// or an asset reference token depending on where the document is in its
// lifecycle.
type Profile struct {
	Username           string           `json:"username"`
	Name               string           `json:"name"`
	Pronouns           string           `json:"pronouns,omitempty"`
	Avatar             string           `json:"avatar,omitempty"`
	Bio                string           `json:"bio,omitempty"`
	Location           string           `json:"location,omitempty"`
	Website            string           `json:"website,omitempty"`
	Background         string           `json:"background,omitempty"`
	CurrentCompany     string           `json:"currentCompany,omitempty"`
	CurrentCompanyLink string           `json:"currentCompanyLink,omitempty"`
	CurrentSchool      string           `json:"currentSchool,omitempty"`
	CurrentSchoolLink  string           `json:"currentSchoolLink,omitempty"`
	Contacts           []Contact        `json:"contacts"`
	SocialLinks        []SocialLink     `json:"socialLinks"`
	Projects           []Project        `json:"projects"`
	Gallery            []GalleryItem    `json:"gallery"`
	WorkExperiences    []WorkExperience `json:"workExperiences"`
	Educations         []Education      `json:"educations"`
}

// Contact is a way to reach the profile owner; Image typically holds a QR code.
type Contact struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

// SocialLink points at an external profile. It carries no binary assets.
type SocialLink struct {
	Type       string            `json:"type"`
	Value      string            `json:"value"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type Project struct {
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

type GalleryItem struct {
	Image   string `json:"image,omitempty"`
	Caption string `json:"caption,omitempty"`
}

type WorkExperience struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	CompanyLink string `json:"companyLink,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
	IsCurrent   bool   `json:"isCurrent"`
}

type Education struct {
	School      string `json:"school"`
	SchoolLink  string `json:"schoolLink,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Major       string `json:"major,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
	IsCurrent   bool   `json:"isCurrent"`
}

// Record is a profile row as persisted: the document plus ownership metadata.
type Record struct {
	OwnerID   uuid.UUID
	Username  string
	Document  Profile
	UpdatedAt time.Time
}

// Clone returns a deep copy so callers can rewrite fields without touching
// the original document.
func (p Profile) Clone() Profile {
	out := p
	out.Contacts = append([]Contact(nil), p.Contacts...)
	out.Projects = append([]Project(nil), p.Projects...)
	out.Gallery = append([]GalleryItem(nil), p.Gallery...)
	out.WorkExperiences = append([]WorkExperience(nil), p.WorkExperiences...)
	out.Educations = append([]Education(nil), p.Educations...)
	out.SocialLinks = append([]SocialLink(nil), p.SocialLinks...)
	for i, link := range out.SocialLinks {
		if link.Attributes == nil {
			continue
		}
		attrs := make(map[string]string, len(link.Attributes))
		for k, v := range link.Attributes {
			attrs[k] = v
		}
		out.SocialLinks[i].Attributes = attrs
	}
	return out
}
