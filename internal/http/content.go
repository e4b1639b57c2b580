package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/service"
)

type aboutRequest struct {
	Content         *string  `json:"content"`
	Skills          []string `json:"skills"`
	ExperienceYears *int     `json:"experience_years"`
}

func (h *Handler) getAbout(c *gin.Context) {
	about, err := h.cfg.About.Get(c.Request.Context())
	if err != nil {
		h.fail(c, err, "About information not found")
		return
	}
	c.JSON(http.StatusOK, aboutToResponse(*about))
}

func (h *Handler) upsertAbout(c *gin.Context) {
	var req aboutRequest
	if !bindJSON(c, &req) {
		return
	}
	about, err := h.cfg.About.Upsert(c.Request.Context(), domain.AboutPatch{
		Content:         req.Content,
		Skills:          req.Skills,
		ExperienceYears: req.ExperienceYears,
	})
	if err != nil {
		h.fail(c, err, "About information not found")
		return
	}
	c.JSON(http.StatusOK, aboutToResponse(*about))
}

func (h *Handler) createAbout(c *gin.Context) {
	var req aboutRequest
	if !bindJSON(c, &req) {
		return
	}
	about := domain.About{Skills: req.Skills}
	if req.Content != nil {
		about.Content = *req.Content
	}
	if req.ExperienceYears != nil {
		about.ExperienceYears = *req.ExperienceYears
	}

	created, err := h.cfg.About.Create(c.Request.Context(), about)
	if errors.Is(err, service.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "About information already exists. Use PUT to update."})
		return
	}
	if err != nil {
		h.fail(c, err, "About information not found")
		return
	}
	c.JSON(http.StatusCreated, aboutToResponse(*created))
}

type projectRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	ImageURL     *string  `json:"image_url"`
	Technologies []string `json:"technologies"`
	ProjectURL   *string  `json:"project_url"`
	GithubURL    *string  `json:"github_url"`
	Featured     *bool    `json:"featured"`
}

func (h *Handler) listProjects(c *gin.Context) {
	projects, err := h.cfg.Projects.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	resp := make([]ProjectResponse, len(projects))
	for i := range projects {
		resp[i] = projectToResponse(projects[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getProject(c *gin.Context) {
	id, ok := parseID(c, "project")
	if !ok {
		return
	}
	project, err := h.cfg.Projects.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Project not found")
		return
	}
	c.JSON(http.StatusOK, projectToResponse(*project))
}

func (h *Handler) createProject(c *gin.Context) {
	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}
	project := domain.Project{
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Technologies: req.Technologies,
		ProjectURL:   req.ProjectURL,
		GithubURL:    req.GithubURL,
	}
	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Featured != nil {
		project.Featured = *req.Featured
	}

	created, err := h.cfg.Projects.Create(c.Request.Context(), project)
	if err != nil {
		h.fail(c, err, "Project not found")
		return
	}
	c.JSON(http.StatusCreated, projectToResponse(*created))
}

func (h *Handler) updateProject(c *gin.Context) {
	id, ok := parseID(c, "project")
	if !ok {
		return
	}
	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}
	project, err := h.cfg.Projects.Update(c.Request.Context(), id, domain.ProjectPatch{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Technologies: req.Technologies,
		ProjectURL:   req.ProjectURL,
		GithubURL:    req.GithubURL,
		Featured:     req.Featured,
	})
	if err != nil {
		h.fail(c, err, "Project not found")
		return
	}
	c.JSON(http.StatusOK, projectToResponse(*project))
}

func (h *Handler) deleteProject(c *gin.Context) {
	id, ok := parseID(c, "project")
	if !ok {
		return
	}
	if err := h.cfg.Projects.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Project not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully", "id": id})
}

type technologyRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Icon     *string `json:"icon"`
	Color    *string `json:"color"`
}

func (h *Handler) listTechnologies(c *gin.Context) {
	techs, err := h.cfg.Technologies.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	resp := make([]TechnologyResponse, len(techs))
	for i := range techs {
		resp[i] = technologyToResponse(techs[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getTechnology(c *gin.Context) {
	id, ok := parseID(c, "technology")
	if !ok {
		return
	}
	tech, err := h.cfg.Technologies.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Technology not found")
		return
	}
	c.JSON(http.StatusOK, technologyToResponse(*tech))
}

func (h *Handler) createTechnology(c *gin.Context) {
	var req technologyRequest
	if !bindJSON(c, &req) {
		return
	}
	tech := domain.Technology{Icon: req.Icon, Color: req.Color}
	if req.Name != nil {
		tech.Name = *req.Name
	}
	if req.Category != nil {
		tech.Category = *req.Category
	}

	created, err := h.cfg.Technologies.Create(c.Request.Context(), tech)
	if err != nil {
		h.fail(c, err, "Technology not found")
		return
	}
	c.JSON(http.StatusCreated, technologyToResponse(*created))
}

func (h *Handler) updateTechnology(c *gin.Context) {
	id, ok := parseID(c, "technology")
	if !ok {
		return
	}
	var req technologyRequest
	if !bindJSON(c, &req) {
		return
	}
	tech, err := h.cfg.Technologies.Update(c.Request.Context(), id, domain.TechnologyPatch{
		Name:     req.Name,
		Category: req.Category,
		Icon:     req.Icon,
		Color:    req.Color,
	})
	if err != nil {
		h.fail(c, err, "Technology not found")
		return
	}
	c.JSON(http.StatusOK, technologyToResponse(*tech))
}

func (h *Handler) deleteTechnology(c *gin.Context) {
	id, ok := parseID(c, "technology")
	if !ok {
		return
	}
	if err := h.cfg.Technologies.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Technology not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Technology deleted successfully", "id": id})
}
