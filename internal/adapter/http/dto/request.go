package dto

import (
	"net/url"
	"strconv"

	"github.com/iho/extracto/internal/usecase"
)

// SearchRequest holds the query string of a transaction search.
type SearchRequest struct {
	Query  string
	Limit  int
	Offset int
}

// SearchRequestFromQuery reads q, limit and offset. Malformed numbers
// fall back to zero, which the use case replaces with its defaults.
func SearchRequestFromQuery(values url.Values) SearchRequest {
	limit, _ := strconv.Atoi(values.Get("limit"))
	offset, _ := strconv.Atoi(values.Get("offset"))

	return SearchRequest{
		Query:  values.Get("q"),
		Limit:  limit,
		Offset: offset,
	}
}

// ToUseCaseInput converts to use case input.
func (r SearchRequest) ToUseCaseInput() usecase.SearchInput {
	return usecase.SearchInput{
		Query:  r.Query,
		Limit:  r.Limit,
		Offset: r.Offset,
	}
}
