package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStaticRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupStaticRoutes(r, fstest.MapFS{
		"index.html":       {Data: []byte("<html>admin</html>")},
		"assets/app.js":    {Data: []byte("console.log(1)")},
		"assets/style.css": {Data: []byte("body{}")},
	})

	tests := []struct {
		path        string
		code        int
		contentType string
		body        string
	}{
		{"/admin/", http.StatusOK, "text/html; charset=utf-8", "<html>admin</html>"},
		{"/admin/assets/app.js", http.StatusOK, "application/javascript", "console.log(1)"},
		{"/admin/assets/style.css", http.StatusOK, "text/css", "body{}"},
		{"/admin/products/42", http.StatusOK, "text/html; charset=utf-8", "<html>admin</html>"},
		{"/admin/assets/missing.js", http.StatusNotFound, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/", w.Header().Get("Location"))
}
