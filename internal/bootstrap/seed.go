package bootstrap

import (
	"portfolio-api/internal/domain"
	"portfolio-api/internal/service"
)

func seedAbout() domain.About {
	return domain.About{
		Content: "I am a passionate Mechanical Engineer with over 3 years of experience in CAD design, 3D modeling, " +
			"and engineering analysis. I specialize in creating innovative solutions using industry-leading software " +
			"and have a proven track record of delivering high-quality engineering projects across various industries.",
		Skills:          []string{"AutoCAD", "SolidWorks", "Revit", "3D Modeling", "Engineering Analysis", "Project Management"},
		ExperienceYears: 3,
	}
}

func seedHomepage() domain.HomepageSettings {
	title, subtitle, description := service.DefaultBannerTitle, service.DefaultBannerSubtitle, service.DefaultBannerDescription
	return domain.HomepageSettings{
		BannerTitle:       &title,
		BannerSubtitle:    &subtitle,
		BannerDescription: &description,
	}
}

func seedContactInfo() domain.ContactInfo {
	return domain.ContactInfo{
		Email:    str("anas.ismail@example.com"),
		Phone:    str("+1 (555) 123-4567"),
		Github:   str("github.com/anasismail"),
		Linkedin: str("linkedin.com/in/anasismail"),
	}
}

func seedTechnologies() []domain.Technology {
	return []domain.Technology{
		{Name: "AutoCAD", Category: "CAD Software", Icon: str("🏗️"), Color: str("#E74C3C")},
		{Name: "SolidWorks", Category: "CAD Software", Icon: str("⚙️"), Color: str("#3498DB")},
		{Name: "Revit", Category: "CAD Software", Icon: str("🏢"), Color: str("#F39C12")},
		{Name: "ANSYS", Category: "Engineering Tools", Icon: str("📊"), Color: str("#9B59B6")},
		{Name: "MATLAB", Category: "Engineering Tools", Icon: str("📈"), Color: str("#E67E22")},
		{Name: "Python", Category: "Programming", Icon: str("🐍"), Color: str("#27AE60")},
	}
}

func seedProjects() []domain.Project {
	return []domain.Project{
		{
			Title:        "Mechanical Design Project",
			Description:  str("Complete mechanical system design using SolidWorks and AutoCAD for industrial automation."),
			ImageURL:     str("/placeholder.svg"),
			Technologies: []string{"SolidWorks", "AutoCAD", "ANSYS"},
			ProjectURL:   str("#"),
			GithubURL:    str("#"),
			Featured:     true,
		},
		{
			Title:        "HVAC System Design",
			Description:  str("Energy-efficient HVAC system design for commercial buildings using Revit and simulation tools."),
			ImageURL:     str("/placeholder.svg"),
			Technologies: []string{"Revit", "ANSYS", "Energy Modeling"},
			ProjectURL:   str("#"),
			Featured:     true,
		},
		{
			Title:        "Structural Analysis",
			Description:  str("Comprehensive structural analysis and optimization using FEA and advanced simulation techniques."),
			ImageURL:     str("/placeholder.svg"),
			Technologies: []string{"ANSYS", "MATLAB", "FEA"},
			ProjectURL:   str("#"),
		},
	}
}

func str(s string) *string { return &s }
