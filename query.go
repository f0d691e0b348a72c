package runpod

import (
	"net/url"

	"github.com/google/go-querystring/query"
)

// encodeQuery turns a query struct with `url` tags into parameters. A nil
// pointer yields no parameters.
func encodeQuery(op string, q interface{}) (url.Values, error) {
	values, err := query.Values(q)
	if err != nil {
		return nil, invalidRequest(op, "invalid query", err)
	}
	return values, nil
}
