package movies

// Type is the catalogue entry kind.
type Type string

const (
	TypeMovie  Type = "movie"
	TypeSeries Type = "series"
)

// Valid reports whether t is a known entry kind.
func (t Type) Valid() bool {
	return t == TypeMovie || t == TypeSeries
}

// Movie is one search result.
type Movie struct {
	Title  string `json:"Title" validate:"required,max=256"`
	Year   string `json:"Year" validate:"required"`
	ImdbID string `json:"imdbID" validate:"required,imdbid"`
	Type   Type   `json:"Type" validate:"required,oneof=movie series"`
	Poster string `json:"Poster"`
}

// SearchResponse is the body of a successful title search.
type SearchResponse struct {
	Results      []Movie `json:"Search"`
	TotalResults string  `json:"totalResults"`
	Response     string  `json:"Response"`
}
