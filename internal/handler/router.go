package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/JuanTorresCortes/auth-server/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Tasks     *TaskHandler
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	users := api.Group("/users")
	users.POST("/register", middleware.CheckEmptyFields(), middleware.ValidateCredentials(), deps.Auth.Register)
	users.POST("/login", middleware.CheckEmptyFields(), middleware.ValidateCredentials(), deps.Auth.Login)
	users.GET("/validate", middleware.JWTAuth(deps.JWTSecret), deps.Auth.Validate)

	todos := api.Group("/todos")
	todos.Use(middleware.JWTAuth(deps.JWTSecret))
	todos.GET("/all-todos", deps.Tasks.List)
	todos.POST("/create-todo", middleware.CheckEmptyFields(), deps.Tasks.Create)
	todos.PUT("/edit-todo/:id", deps.Tasks.Update)
	todos.DELETE("/delete-todo/:id", deps.Tasks.Delete)
}
