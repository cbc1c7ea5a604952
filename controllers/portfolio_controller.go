package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andresouza/portfolio/middleware"
	"github.com/andresouza/portfolio/service"
	"github.com/andresouza/portfolio/utils"
)

// PortfolioController serves the public site: showcase, project detail,
// likes, comments, about page and the contact form.
type PortfolioController struct {
	svc *service.Service
}

func NewPortfolioController(svc *service.Service) *PortfolioController {
	return &PortfolioController{svc: svc}
}

// Home returns the top published projects for the landing page.
func (p *PortfolioController) Home(ctx *gin.Context) {
	key := cacheProjectsPrefix + "home"
	if serveCached(ctx, key) {
		return
	}
	projects, err := p.svc.HomeProjects(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	respondAndCache(ctx, key, gin.H{"projects": projects})
}

// ListProjects returns every published project ranked by likes.
func (p *PortfolioController) ListProjects(ctx *gin.Context) {
	key := cacheProjectsPrefix + "list"
	if serveCached(ctx, key) {
		return
	}
	projects, err := p.svc.PublishedProjects(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	respondAndCache(ctx, key, gin.H{"projects": projects})
}

// GetProject returns one published project with its comments.
func (p *PortfolioController) GetProject(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	key := cacheProjectsPrefix + "detail:" + id
	if serveCached(ctx, key) {
		return
	}
	project, comments, err := p.svc.ProjectDetail(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	respondAndCache(ctx, key, gin.H{"project": project, "comments": comments})
}

// LikeProject adds a like on behalf of the authenticated user.
func (p *PortfolioController) LikeProject(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	likes, err := p.svc.Like(ctx.Request.Context(), middleware.PrincipalFrom(ctx), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.InvalidateByPrefix(cacheProjectsPrefix)
	utils.Success(ctx, gin.H{"likes": likes})
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentProject posts a comment on a project.
func (p *PortfolioController) CommentProject(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	var req commentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}
	comment, err := p.svc.CommentOn(ctx.Request.Context(), middleware.PrincipalFrom(ctx), id, req.Content)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.InvalidateByPrefix(cacheProjectsPrefix)
	utils.Success(ctx, comment)
}

// About returns the about-page content with the achievement timeline.
func (p *PortfolioController) About(ctx *gin.Context) {
	key := cacheAboutPrefix + "page"
	if serveCached(ctx, key) {
		return
	}
	info, achievements, err := p.svc.About(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	respondAndCache(ctx, key, gin.H{"about": info, "achievements": achievements})
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Contact records a contact-form submission.
func (p *PortfolioController) Contact(ctx *gin.Context) {
	var req contactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}
	if err := p.svc.Contact(ctx.Request.Context(), req.Name, req.Email, req.Message); err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "thank you for reaching out"})
}
