// Package validation validates request bodies and configuration.
//
// Struct tags go through go-playground/validator, with an extra "imdbid"
// tag for IMDb title identifiers:
//
//	type addFavoriteRequest struct {
//	    ImdbID string `json:"imdbID" validate:"required,imdbid"`
//	    Title  string `json:"Title" validate:"required,max=512"`
//	}
//	err := validation.Validate(req)
//
// Programmatic checks collect errors the same way:
//
//	err := validation.New().Required("title", q).MaxLength("title", q, 256).Validate()
package validation
