package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/db"
	middleware "github.com/Skotchmaster/storefront/internal/middleware/auth"
)

type Deps struct {
	UserHandler    *UserHTTP
	CatalogHandler *CatalogHTTP
	JWTSecret      []byte
	UploadDir      string
	DB             *gorm.DB
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx, d.DB); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable").SetInternal(err)
		}
		return c.NoContent(http.StatusOK)
	})

	e.Static("/uploads", d.UploadDir)

	authMW := middleware.NewBearer(d.JWTSecret)

	users := e.Group("/api/users")
	users.POST("/register", d.UserHandler.Register)
	users.POST("/login-user", d.UserHandler.Login)

	me := users.Group("", authMW.RequireAuth)
	me.GET("/profile", d.UserHandler.Profile)
	me.PUT("/update", d.UserHandler.UpdateProfile)
	me.POST("/change-password", d.UserHandler.ChangePassword)
	me.POST("/upload-profile-picture", d.UserHandler.UploadProfilePicture)

	products := e.Group("/api/products")
	products.POST("", d.CatalogHandler.CreateProduct)
	products.POST("/upload", d.CatalogHandler.UploadImages)
	products.GET("", d.CatalogHandler.ListProducts)
	products.GET("/search", d.CatalogHandler.SearchProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.PUT("/:id", d.CatalogHandler.UpdateProduct)
	products.DELETE("/:id", d.CatalogHandler.DeleteProduct)

	categories := e.Group("/api/categories")
	categories.GET("", d.CatalogHandler.ListCategories)
	categories.POST("", d.CatalogHandler.CreateCategory)
	categories.GET("/:id", d.CatalogHandler.GetCategory)
	categories.GET("/:id/products", d.CatalogHandler.CategoryProducts)
}
