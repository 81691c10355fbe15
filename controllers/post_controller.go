package controllers

import (
	"context"
	"net/http"

	"blogapi/middleware"
	"blogapi/models"
	"blogapi/services"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	postService *services.PostService
}

func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

func (pc *PostController) ListPublic(c *gin.Context) {
	page, err := pc.postService.ListPublic(c.Request.Context(), pageQuery(c))
	if err != nil {
		respondError(c, err, "Post")
		return
	}

	c.JSON(http.StatusOK, models.MapPage(page, models.PostResponses))
}

func (pc *PostController) ListManaged(c *gin.Context) {
	status := models.ParseStatusFilter(c.Query("status"))
	page, err := pc.postService.ListManaged(c.Request.Context(), middleware.CurrentActor(c), pageQuery(c), status)
	if err != nil {
		respondError(c, err, "Post")
		return
	}

	c.JSON(http.StatusOK, models.MapPage(page, models.PostResponses))
}

func (pc *PostController) Stats(c *gin.Context) {
	stats, err := pc.postService.Stats(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		respondError(c, err, "Post")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (pc *PostController) GetBySlug(c *gin.Context) {
	post, err := pc.postService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err, "Post")
		return
	}

	c.JSON(http.StatusOK, post.DetailResponse())
}

func (pc *PostController) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	post, err := pc.postService.GetByID(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err, "Post")
		return
	}

	c.JSON(http.StatusOK, post.Response())
}

func (pc *PostController) Create(c *gin.Context) {
	var input models.PostInput
	if !bindJSON(c, &input) {
		return
	}

	post, err := pc.postService.Create(c.Request.Context(), middleware.CurrentActor(c), &input)
	if err != nil {
		respondError(c, err, "Post")
		return
	}

	c.JSON(http.StatusCreated, post.Response())
}

func (pc *PostController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input models.PostInput
	if !bindJSON(c, &input) {
		return
	}

	post, err := pc.postService.Update(c.Request.Context(), middleware.CurrentActor(c), id, &input)
	if err != nil {
		respondError(c, err, "Post")
		return
	}

	c.JSON(http.StatusOK, post.Response())
}

func (pc *PostController) Publish(c *gin.Context) {
	pc.changeStatus(c, pc.postService.Publish)
}

func (pc *PostController) Unpublish(c *gin.Context) {
	pc.changeStatus(c, pc.postService.Unpublish)
}

func (pc *PostController) changeStatus(c *gin.Context, change func(ctx context.Context, actor models.Actor, id uint) (*models.Post, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	post, err := change(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err, "Post")
		return
	}

	c.JSON(http.StatusOK, post.Response())
}

func (pc *PostController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := pc.postService.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		respondError(c, err, "Post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
