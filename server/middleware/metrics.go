package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/simplemovies/errors"
	"github.com/kbukum/simplemovies/observability"
)

// Metrics records request count, duration, in-flight requests and the code
// of any error a handler attached. Routes
// are labelled with their gin pattern so path parameters do not explode
// cardinality.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		m.RecordRequestStart(ctx)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordRequestEnd(ctx, route, c.Request.Method, c.Writer.Status(), time.Since(start))
		if last := c.Errors.Last(); last != nil {
			m.RecordError(ctx, string(apperrors.From(last.Err).Code), "http")
		}
	}
}
