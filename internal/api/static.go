package api

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".js":   "application/javascript",
	".css":  "text/css",
	".svg":  "image/svg+xml",
	".json": "application/json",
	".png":  "image/png",
	".ico":  "image/x-icon",
}

// SetupStaticRoutes serves a prebuilt admin bundle under /admin. Unknown
// paths fall back to index.html so client-side routes resolve.
func SetupStaticRoutes(r *gin.Engine, assets fs.FS) {
	r.GET("/admin/*filepath", func(c *gin.Context) {
		name := strings.TrimPrefix(c.Param("filepath"), "/")
		if name == "" {
			name = "index.html"
		}
		serveAdminFile(c, assets, name)
	})
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/admin/")
	})
}

func serveAdminFile(c *gin.Context, assets fs.FS, name string) {
	if !fs.ValidPath(name) {
		c.String(http.StatusBadRequest, "Invalid path")
		return
	}

	content, err := fs.ReadFile(assets, name)
	if err != nil && path.Ext(name) == "" {
		name = "index.html"
		content, err = fs.ReadFile(assets, name)
	}
	if err != nil {
		c.String(http.StatusNotFound, "File not found")
		return
	}

	contentType, ok := contentTypes[path.Ext(name)]
	if !ok {
		contentType = http.DetectContentType(content)
	}

	c.Data(http.StatusOK, contentType, content)
}
