package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/simplemovies/errors"
	"github.com/kbukum/simplemovies/logger"
	"github.com/kbukum/simplemovies/movies"
	"github.com/kbukum/simplemovies/server"
	"github.com/kbukum/simplemovies/validation"
)

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// MovieView is a search result annotated with its favorite state.
type MovieView struct {
	movies.Movie
	Favorite bool `json:"favorite"`
}

// Handlers serves the API routes.
type Handlers struct {
	env *Environment
	log *logger.Logger
}

// NewHandlers creates Handlers over env.
func NewHandlers(env *Environment, log *logger.Logger) *Handlers {
	return &Handlers{env: env, log: log.WithComponent("api")}
}

// Login authenticates the caller and returns a bearer token.
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.env.Auth.Get().Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	h.log.WithContext(c.Request.Context()).Info("User logged in", logger.Fields(logger.FieldUserID, resp.ID))
	server.RespondOK(c, resp)
}

// SearchMovies answers GET /movies?title=.
func (h *Handlers) SearchMovies(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))

	results, err := h.env.Searcher.Get().SearchMovies(c.Request.Context(), title)
	if err != nil {
		h.log.WithContext(c.Request.Context()).Warn("Movie search failed", logger.Fields(
			logger.FieldTitle, title,
			logger.FieldError, err.Error(),
		))
		server.RespondWithError(c, movies.ToAppError(err))
		return
	}

	favs := h.env.Favorites.Get()
	views := make([]MovieView, len(results))
	for i, m := range results {
		views[i] = MovieView{Movie: m, Favorite: favs.IsFavorite(m.ImdbID)}
	}
	server.RespondOK(c, views)
}

// ListFavorites answers GET /favorites.
func (h *Handlers) ListFavorites(c *gin.Context) {
	server.RespondOK(c, h.env.Favorites.Get().Items())
}

// AddFavorite answers POST /favorites with a movie body.
func (h *Handlers) AddFavorite(c *gin.Context) {
	var m movies.Movie
	if !bindJSON(c, &m) {
		return
	}

	if err := h.env.Favorites.Get().Add(c.Request.Context(), m); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, m)
}

// RemoveFavorite answers DELETE /favorites/:imdbID.
func (h *Handlers) RemoveFavorite(c *gin.Context) {
	id := c.Param("imdbID")
	if !validation.IsIMDbID(id) {
		server.RespondWithError(c, apperrors.InvalidInput("imdbID", "must look like tt0000000"))
		return
	}

	if err := h.env.Favorites.Get().Remove(c.Request.Context(), id); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}

// bindJSON decodes and validates the body, answering the request itself on
// failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			server.RespondWithError(c, apperrors.New(apperrors.ErrCodeInvalidInput,
				"Request body is too large.", http.StatusRequestEntityTooLarge))
			return false
		}
		server.RespondWithError(c, apperrors.InvalidInput("body", "malformed JSON"))
		return false
	}
	if err := validation.Validate(dst); err != nil {
		server.RespondWithError(c, err)
		return false
	}
	return true
}
