package controllers

import (
	"net/http"

	"blogapi/middleware"
	"blogapi/models"
	"blogapi/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService *services.UserService
}

func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

func (uc *UserController) GetUsers(c *gin.Context) {
	page, err := uc.userService.ListUsers(c.Request.Context(), middleware.CurrentActor(c), pageQuery(c))
	if err != nil {
		respondError(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, page)
}

func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := uc.userService.GetUser(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (uc *UserController) UpdateRole(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.userService.SetAdmin(c.Request.Context(), middleware.CurrentActor(c), id, *req.IsAdmin)
	if err != nil {
		respondError(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, user)
}
