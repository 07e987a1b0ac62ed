package service

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(s *Server) *gin.Engine {
	routes := gin.Default()

	routes.GET("/activity/:username", s.GetActivity)

	cachedRoutes := routes.Group("/")
	{
		cachedRoutes.Use(s.CacheUserRequest)

		cachedRoutes.GET("/user/:id", s.GetUser)
		cachedRoutes.POST("/user", s.AddUser)
		cachedRoutes.PATCH("/user/:id", s.UpdateUser)
		cachedRoutes.DELETE("/user/:id", s.DeleteUser)
		cachedRoutes.GET("/users", s.GetAllUsers)

		cachedRoutes.GET("/book/:id", s.GetBook)
		cachedRoutes.POST("/book", s.AddBook)
		cachedRoutes.DELETE("/book/:id", s.DeleteBook)
		cachedRoutes.GET("/books", s.GetAllBooks)
		cachedRoutes.GET("/books/author/:author", s.FindByAuthor)
	}

	return routes
}
