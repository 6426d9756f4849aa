package router

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegisterExposesIdeaRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var routes []string
	for _, r := range Register().Routes() {
		routes = append(routes, r.Method+" "+r.Path)
	}

	for _, want := range []string{
		"POST /api/ideas",
		"GET /api/ideas",
		"GET /api/ideas/:id",
		"GET /api/ideas/search",
		"PATCH /api/ideas/:id",
		"DELETE /api/ideas/:id",
	} {
		assert.Contains(t, routes, want)
	}
}
