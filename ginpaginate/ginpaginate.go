// Package ginpaginate serves gopaginate pages from gin handlers.
package ginpaginate

import (
	"net/http"

	"github.com/Alp4ka/gopaginate"
	"github.com/gin-gonic/gin"
)

// Query reads a gopaginate.Query from the request URL.
func Query(c *gin.Context) gopaginate.Query {
	return gopaginate.ParseRequest(c.Request)
}

// Abort records err on the context and stops the request with the status it
// maps to: 503 for misconfiguration, 500 otherwise.
func Abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(gopaginate.StatusCode(err), gin.H{"error": gopaginate.PublicMessage(err)})
}

// Handler serves pages of T from the source built for each request.
//
// Usage:
//
//	r.GET("/users", ginpaginate.Handler[User](func(c *gin.Context) gopaginate.Source {
//		return gopaginate.Repository[User](db)
//	}, cfg))
func Handler[T any](source func(c *gin.Context) gopaginate.Source, cfg gopaginate.Config, opts ...gopaginate.Option) gin.HandlerFunc {
	paginator := gopaginate.NewPaginator[T](cfg, opts...)

	return func(c *gin.Context) {
		res, err := paginator.Paginate(c.Request.Context(), Query(c), source(c))
		if err != nil {
			Abort(c, err)
			return
		}

		c.JSON(http.StatusOK, res)
	}
}
