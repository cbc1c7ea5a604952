package controllers

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/andresouza/portfolio/config"
	"github.com/andresouza/portfolio/middleware"
	"github.com/andresouza/portfolio/service"
	"github.com/andresouza/portfolio/utils"
)

// AdminController serves the admin area: dashboard, project and
// achievement management, and the profile page.
type AdminController struct {
	svc       *service.Service
	uploadDir string
}

func NewAdminController(svc *service.Service) *AdminController {
	return &AdminController{svc: svc, uploadDir: config.Get().UploadDir}
}

// Dashboard returns aggregate stats and recent activity.
func (a *AdminController) Dashboard(ctx *gin.Context) {
	dash, err := a.svc.AdminDashboard(ctx.Request.Context(), middleware.PrincipalFrom(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, dash)
}

// ListProjects returns every project including drafts.
func (a *AdminController) ListProjects(ctx *gin.Context) {
	projects, err := a.svc.AllProjects(ctx.Request.Context(), middleware.PrincipalFrom(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"projects": projects})
}

// GetProject returns one project regardless of status.
func (a *AdminController) GetProject(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	project, err := a.svc.AdminProject(ctx.Request.Context(), middleware.PrincipalFrom(ctx), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, project)
}

// CreateProject creates a project from a multipart form with an optional
// image upload.
func (a *AdminController) CreateProject(ctx *gin.Context) {
	in, err := a.bindProjectForm(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}
	project, err := a.svc.CreateProject(ctx.Request.Context(), middleware.PrincipalFrom(ctx), in)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.InvalidateByPrefix(cacheProjectsPrefix)
	utils.Success(ctx, project)
}

// UpdateProject edits a project. An omitted image keeps the stored one.
func (a *AdminController) UpdateProject(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	in, err := a.bindProjectForm(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}
	project, err := a.svc.UpdateProject(ctx.Request.Context(), middleware.PrincipalFrom(ctx), id, in)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.InvalidateByPrefix(cacheProjectsPrefix)
	utils.Success(ctx, project)
}

// DeleteProject removes a project and its comments.
func (a *AdminController) DeleteProject(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	if err := a.svc.DeleteProject(ctx.Request.Context(), middleware.PrincipalFrom(ctx), id); err != nil {
		fail(ctx, err)
		return
	}
	utils.InvalidateByPrefix(cacheProjectsPrefix)
	utils.Success(ctx, nil)
}

func (a *AdminController) bindProjectForm(ctx *gin.Context) (service.ProjectInput, error) {
	in := service.ProjectInput{
		Title:       ctx.PostForm("title"),
		Description: ctx.PostForm("description"),
		Tags:        ctx.PostForm("tags"),
		Status:      ctx.PostForm("status"),
		Link:        ctx.PostForm("link"),
	}
	image, err := a.saveUpload(ctx, "image")
	if err != nil {
		return service.ProjectInput{}, err
	}
	in.Image = image
	return in, nil
}

// ListAchievements returns the achievement timeline.
func (a *AdminController) ListAchievements(ctx *gin.Context) {
	achievements, err := a.svc.Achievements(ctx.Request.Context(), middleware.PrincipalFrom(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"achievements": achievements})
}

type achievementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// CreateAchievement adds an achievement.
func (a *AdminController) CreateAchievement(ctx *gin.Context) {
	var req achievementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}
	in := service.AchievementInput{Title: req.Title, Description: req.Description, Date: req.Date}
	achievement, err := a.svc.CreateAchievement(ctx.Request.Context(), middleware.PrincipalFrom(ctx), in)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.InvalidateByPrefix(cacheAboutPrefix)
	utils.Success(ctx, achievement)
}

// UpdateAchievement edits an achievement.
func (a *AdminController) UpdateAchievement(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	var req achievementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}
	in := service.AchievementInput{Title: req.Title, Description: req.Description, Date: req.Date}
	achievement, err := a.svc.UpdateAchievement(ctx.Request.Context(), middleware.PrincipalFrom(ctx), id, in)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.InvalidateByPrefix(cacheAboutPrefix)
	utils.Success(ctx, achievement)
}

// DeleteAchievement removes an achievement.
func (a *AdminController) DeleteAchievement(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	if err := a.svc.DeleteAchievement(ctx.Request.Context(), middleware.PrincipalFrom(ctx), id); err != nil {
		fail(ctx, err)
		return
	}
	utils.InvalidateByPrefix(cacheAboutPrefix)
	utils.Success(ctx, nil)
}

// Profile returns the admin account and the about-page content.
func (a *AdminController) Profile(ctx *gin.Context) {
	user, info, err := a.svc.Profile(ctx.Request.Context(), middleware.PrincipalFrom(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"user": user, "about": info})
}

// UpdateProfile updates the admin account and the about page from a
// multipart form with an optional profile image.
func (a *AdminController) UpdateProfile(ctx *gin.Context) {
	image, err := a.saveUpload(ctx, "profile_image")
	if err != nil {
		fail(ctx, err)
		return
	}
	in := service.ProfileInput{
		Name:         ctx.PostForm("name"),
		Email:        ctx.PostForm("email"),
		ProfileImage: image,
		AboutTitle:   ctx.PostForm("about_title"),
		AboutText:    ctx.PostForm("about_description"),
		Skills:       ctx.PostForm("skills"),
		ContactEmail: ctx.PostForm("contact_email"),
	}
	user, info, err := a.svc.UpdateProfile(ctx.Request.Context(), middleware.PrincipalFrom(ctx), in)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.InvalidateByPrefix(cacheAboutPrefix)
	utils.Success(ctx, gin.H{"user": user, "about": info})
}

// saveUpload stores an optional uploaded file under a uuid-prefixed name
// and returns its public path. Returns "" when the field is absent.
func (a *AdminController) saveUpload(ctx *gin.Context, field string) (string, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return "", nil
		}
		return "", err
	}
	return a.storeFile(ctx, header)
}

func (a *AdminController) storeFile(ctx *gin.Context, header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + "_" + filepath.Base(header.Filename)
	if err := ctx.SaveUploadedFile(header, filepath.Join(a.uploadDir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
