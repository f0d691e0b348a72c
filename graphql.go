package runpod

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// GraphQLService sends raw queries to the GraphQL API, for data the REST API
// does not expose yet (GPU availability, account info, ...).
type GraphQLService struct {
	t *Transport
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// GraphQLError is one entry of a GraphQL "errors" array.
type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// Query runs query and decodes its "data" field into out. A nil out discards
// the data.
//
// GraphQL reports failures in the body with status 200. A non-empty "errors"
// array is returned as a [KindAPI] error carrying every message.
//
//	var res struct {
//	    Myself struct {
//	        ID string `json:"id"`
//	    } `json:"myself"`
//	}
//	err := client.GraphQL().Query(ctx, `query { myself { id } }`, nil, &res)
func (s *GraphQLService) Query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	const op = "graphql.query"
	if strings.TrimSpace(query) == "" {
		return invalidRequest(op, "query is required", nil)
	}

	resp, err := s.t.Send(ctx, Request{
		Op:     op,
		Target: TargetGraphQL,
		Method: http.MethodPost,
		Path:   "/",
		Body:   graphqlRequest{Query: query, Variables: variables},
	})
	if err != nil {
		return err
	}

	var body graphqlResponse
	if err := decode(op, resp, &body); err != nil {
		return err
	}
	if len(body.Errors) > 0 {
		messages := make([]string, 0, len(body.Errors))
		for _, e := range body.Errors {
			messages = append(messages, e.Message)
		}
		return &Error{
			Kind:    KindAPI,
			Op:      op,
			Code:    "GRAPHQL_ERROR",
			Message: strings.Join(messages, "; "),
			Status:  resp.Status,
			Body:    truncate(resp.Body, maxErrorBodySize),
		}
	}
	if out == nil || len(body.Data) == 0 || string(body.Data) == "null" {
		return nil
	}
	return decode(op, &RawResponse{Status: resp.Status, Body: body.Data}, out)
}
