package controllers

import (
	"net/http"
	"strconv"

	"blogapi/middleware"
	"blogapi/models"
	"blogapi/services"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	commentService *services.CommentService
}

func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

func (cc *CommentController) List(c *gin.Context) {
	var postID uint
	if raw := c.Query("postId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			validationFailed(c, map[string]string{"postId": "must be a positive integer"})
			return
		}
		postID = uint(id)
	}

	page, err := cc.commentService.List(c.Request.Context(), middleware.CurrentActor(c), pageQuery(c), postID)
	if err != nil {
		respondError(c, err, "Comment")
		return
	}

	c.JSON(http.StatusOK, models.MapPage(page, models.CommentResponses))
}

func (cc *CommentController) Stats(c *gin.Context) {
	stats, err := cc.commentService.Stats(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		respondError(c, err, "Comment")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (cc *CommentController) Create(c *gin.Context) {
	var req models.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := cc.commentService.Create(c.Request.Context(), middleware.CurrentActor(c), &req)
	if err != nil {
		respondError(c, err, "Post")
		return
	}

	c.JSON(http.StatusCreated, comment.Response())
}

func (cc *CommentController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := cc.commentService.Update(c.Request.Context(), middleware.CurrentActor(c), id, &req)
	if err != nil {
		respondError(c, err, "Comment")
		return
	}

	c.JSON(http.StatusOK, comment.Response())
}

func (cc *CommentController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := cc.commentService.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		respondError(c, err, "Comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
