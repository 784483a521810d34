package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/simplemovies/di"
	"github.com/kbukum/simplemovies/logger"
	"github.com/kbukum/simplemovies/server/middleware"
	"github.com/kbukum/simplemovies/session"
)

// Register mounts the API on r. Everything but /login needs a bearer token.
func Register(r gin.IRouter, env *Environment, log *logger.Logger) {
	h := NewHandlers(env, log)

	r.POST("/login", h.Login)

	authed := r.Group("/", middleware.Auth(lazyVerifier{env.Verifier}))
	authed.GET("/movies", h.SearchMovies)
	authed.GET("/favorites", h.ListFavorites)
	authed.POST("/favorites", h.AddFavorite)
	authed.DELETE("/favorites/:imdbID", h.RemoveFavorite)
}

// lazyVerifier defers resolving the verifier to the first request.
type lazyVerifier struct {
	dep *di.Dependency[session.TokenVerifier]
}

func (v lazyVerifier) Verify(token string) (*session.Claims, error) {
	return v.dep.Get().Verify(token)
}
