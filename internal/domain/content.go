package domain

import "time"

// About is the singleton biography block shown on the site.
type About struct {
	ID              int64
	Content         string
	Skills          []string
	ExperienceYears int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AboutPatch carries a partial update; nil fields keep their stored value.
type AboutPatch struct {
	Content         *string
	Skills          []string
	ExperienceYears *int
}

// Project is a portfolio entry.
type Project struct {
	ID           int64
	Title        string
	Description  *string
	ImageURL     *string
	Technologies []string
	ProjectURL   *string
	GithubURL    *string
	Featured     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProjectPatch carries a partial update; nil fields keep their stored value.
type ProjectPatch struct {
	Title        *string
	Description  *string
	ImageURL     *string
	Technologies []string
	ProjectURL   *string
	GithubURL    *string
	Featured     *bool
}

// Technology is a tool or skill badge.
type Technology struct {
	ID        int64
	Name      string
	Category  string
	Icon      *string
	Color     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TechnologyPatch struct {
	Name     *string
	Category *string
	Icon     *string
	Color    *string
}

// HomepageSettings is the singleton hero banner configuration.
type HomepageSettings struct {
	ID                int64
	BannerTitle       *string
	BannerSubtitle    *string
	BannerDescription *string
	CVFilePath        *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type HomepagePatch struct {
	BannerTitle       *string
	BannerSubtitle    *string
	BannerDescription *string
}

// ContactInfo is the singleton block of public contact details.
type ContactInfo struct {
	ID        int64
	Email     *string
	Phone     *string
	Github    *string
	Linkedin  *string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ContactInfoPatch struct {
	Email    *string
	Phone    *string
	Github   *string
	Linkedin *string
	Address  *string
}

// ContactSubmission is a message left through the public contact form.
type ContactSubmission struct {
	ID        int64
	Name      string
	Email     string
	Phone     *string
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
