// Package echopaginate serves gopaginate pages from echo handlers.
package echopaginate

import (
	"net/http"

	"github.com/Alp4ka/gopaginate"
	"github.com/labstack/echo/v4"
)

// Query reads a gopaginate.Query from the request URL.
func Query(c echo.Context) gopaginate.Query {
	return gopaginate.ParseRequest(c.Request())
}

// HTTPError maps a paginator error to an *echo.HTTPError: 503 for
// misconfiguration, 500 otherwise. The original error is kept as Internal.
func HTTPError(err error) *echo.HTTPError {
	return echo.NewHTTPError(gopaginate.StatusCode(err), gopaginate.PublicMessage(err)).SetInternal(err)
}

// Handler serves pages of T from the source built for each request.
func Handler[T any](source func(c echo.Context) gopaginate.Source, cfg gopaginate.Config, opts ...gopaginate.Option) echo.HandlerFunc {
	paginator := gopaginate.NewPaginator[T](cfg, opts...)

	return func(c echo.Context) error {
		res, err := paginator.Paginate(c.Request().Context(), Query(c), source(c))
		if err != nil {
			return HTTPError(err)
		}

		return c.JSON(http.StatusOK, res)
	}
}
