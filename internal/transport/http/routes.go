package http

import (
	"github.com/labstack/echo/v4"
)

// Register mounts the public site and the admin area. The returned admin
// group already carries guard.
func (r *Routers) Register(e *echo.Echo, guard echo.MiddlewareFunc) *echo.Group {
	e.GET("/", r.Root)
	e.GET("/main", r.Main)
	e.GET("/exhibitions", r.ExhibitionList)
	e.GET("/exhibitions/:id", r.Exhibition)
	e.GET("/rooms/:id", r.Room)
	e.GET("/post/:id", r.Post)
	e.GET("/healthz", r.Health)

	admin := e.Group("/admin", guard)
	admin.GET("/login", r.LoginPage)
	admin.POST("/login", r.Login)
	admin.POST("/logout", r.Logout)
	admin.GET("", r.Dashboard)
	admin.POST("/main", r.SaveMain)

	admin.GET("/exhibitions", r.AdminExhibitions)
	admin.GET("/exhibitions/export.xlsx", r.ExportCatalogue)
	admin.GET("/exhibitions/new", r.NewExhibition)
	admin.POST("/exhibitions/new", r.CreateExhibition)
	admin.GET("/exhibitions/:id", r.EditExhibition)
	admin.POST("/exhibitions/:id", r.UpdateExhibition)
	admin.POST("/exhibitions/:id/delete", r.DeleteExhibition)

	rooms := admin.Group("/exhibitions/:id/rooms")
	rooms.GET("", r.AdminRooms)
	rooms.GET("/new", r.NewRoom)
	rooms.POST("/new", r.CreateRoom)
	rooms.GET("/:roomId", r.EditRoom)
	rooms.POST("/:roomId", r.UpdateRoom)
	rooms.POST("/:roomId/delete", r.DeleteRoom)

	rooms.GET("/:roomId/posts", r.AdminPosts)
	rooms.GET("/:roomId/posts/new", r.NewPost)
	rooms.POST("/:roomId/posts/new", r.CreatePost)
	rooms.GET("/:roomId/posts/:itemId", r.EditPost)
	rooms.POST("/:roomId/posts/:itemId", r.UpdatePost)
	rooms.POST("/:roomId/posts/:itemId/delete", r.DeletePost)

	rooms.GET("/:roomId/gallery", r.AdminGallery)
	rooms.GET("/:roomId/gallery/new", r.NewGalleryItem)
	rooms.POST("/:roomId/gallery/new", r.CreateGalleryItem)
	rooms.GET("/:roomId/gallery/:itemId", r.EditGalleryItem)
	rooms.POST("/:roomId/gallery/:itemId", r.UpdateGalleryItem)
	rooms.POST("/:roomId/gallery/:itemId/delete", r.DeleteGalleryItem)

	return admin
}
