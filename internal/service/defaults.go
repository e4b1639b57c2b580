package service

// Defaults used when a singleton row is created implicitly.
const (
	DefaultAboutContent      = "About content goes here..."
	DefaultBannerTitle       = "Mechanical Engineer"
	DefaultBannerSubtitle    = "Designing innovative solutions with precision and creativity"
	DefaultBannerDescription = "Experienced in CAD design, 3D modeling, and engineering analysis using AutoCAD, SolidWorks, Revit, and cutting-edge engineering tools."

	// CVKey is the storage key of the uploaded CV.
	CVKey = "cv.pdf"
)
