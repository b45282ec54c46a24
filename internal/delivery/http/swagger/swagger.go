package http_swagger

import (
	"github.com/gin-gonic/gin"
	_ "github.com/humanbelnik/jukebox/internal/delivery/http/swagger/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Controller struct {
	docURL string
}

type ControllerOption func(*Controller)

// WithDocURL points the UI at an OpenAPI document served elsewhere, e.g. behind a proxy
// that rewrites the prefix.
func WithDocURL(url string) ControllerOption {
	return func(c *Controller) {
		c.docURL = url
	}
}

func New(opts ...ControllerOption) *Controller {
	c := &Controller{
		docURL: "doc.json",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL(c.docURL),
		ginSwagger.DefaultModelsExpandDepth(1),
	))
}
