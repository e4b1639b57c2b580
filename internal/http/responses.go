package http

import (
	"time"

	"portfolio-api/internal/domain"
)

type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type AboutResponse struct {
	ID              int64    `json:"id"`
	Content         string   `json:"content"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

type ProjectResponse struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  *string  `json:"description"`
	ImageURL     *string  `json:"image_url"`
	Technologies []string `json:"technologies"`
	ProjectURL   *string  `json:"project_url"`
	GithubURL    *string  `json:"github_url"`
	Featured     bool     `json:"featured"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

type TechnologyResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Icon      *string `json:"icon"`
	Color     *string `json:"color"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type HomepageResponse struct {
	ID                int64   `json:"id"`
	BannerTitle       *string `json:"banner_title"`
	BannerSubtitle    *string `json:"banner_subtitle"`
	BannerDescription *string `json:"banner_description"`
	CVFilePath        *string `json:"cv_file_path"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// UploadCVResponse flattens the updated settings next to the upload result.
type UploadCVResponse struct {
	Message string `json:"message"`
	CVURL   string `json:"cv_url"`
	HomepageResponse
}

type ContactInfoResponse struct {
	ID        int64   `json:"id"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Github    *string `json:"github"`
	Linkedin  *string `json:"linkedin"`
	Address   *string `json:"address"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type SubmissionResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func userToResponse(identity domain.Identity) UserResponse {
	return UserResponse{ID: identity.ID, Email: identity.Email, FullName: identity.DisplayName}
}

func aboutToResponse(a domain.About) AboutResponse {
	skills := a.Skills
	if skills == nil {
		skills = []string{}
	}
	return AboutResponse{
		ID:              a.ID,
		Content:         a.Content,
		Skills:          skills,
		ExperienceYears: a.ExperienceYears,
		CreatedAt:       formatTime(a.CreatedAt),
		UpdatedAt:       formatTime(a.UpdatedAt),
	}
}

func projectToResponse(p domain.Project) ProjectResponse {
	techs := p.Technologies
	if techs == nil {
		techs = []string{}
	}
	return ProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		Technologies: techs,
		ProjectURL:   p.ProjectURL,
		GithubURL:    p.GithubURL,
		Featured:     p.Featured,
		CreatedAt:    formatTime(p.CreatedAt),
		UpdatedAt:    formatTime(p.UpdatedAt),
	}
}

func technologyToResponse(t domain.Technology) TechnologyResponse {
	return TechnologyResponse{
		ID:        t.ID,
		Name:      t.Name,
		Category:  t.Category,
		Icon:      t.Icon,
		Color:     t.Color,
		CreatedAt: formatTime(t.CreatedAt),
		UpdatedAt: formatTime(t.UpdatedAt),
	}
}

func homepageToResponse(s domain.HomepageSettings) HomepageResponse {
	return HomepageResponse{
		ID:                s.ID,
		BannerTitle:       s.BannerTitle,
		BannerSubtitle:    s.BannerSubtitle,
		BannerDescription: s.BannerDescription,
		CVFilePath:        s.CVFilePath,
		CreatedAt:         formatTime(s.CreatedAt),
		UpdatedAt:         formatTime(s.UpdatedAt),
	}
}

func contactInfoToResponse(i domain.ContactInfo) ContactInfoResponse {
	return ContactInfoResponse{
		ID:        i.ID,
		Email:     i.Email,
		Phone:     i.Phone,
		Github:    i.Github,
		Linkedin:  i.Linkedin,
		Address:   i.Address,
		CreatedAt: formatTime(i.CreatedAt),
		UpdatedAt: formatTime(i.UpdatedAt),
	}
}

func submissionToResponse(s domain.ContactSubmission) SubmissionResponse {
	return SubmissionResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Message:   s.Message,
		CreatedAt: formatTime(s.CreatedAt),
		UpdatedAt: formatTime(s.UpdatedAt),
	}
}
