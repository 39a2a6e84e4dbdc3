package gql

import (
	"encoding/json"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"
)

// request is a GraphQL request document.
// https://graphql.org/learn/serving-over-http/
type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves GraphQL over HTTP. Responses always carry HTTP 200 with a
// spec-shaped data/errors body; only an unreadable request gets a 400.
type Handler struct {
	schema *graphql.Schema
	log    zerolog.Logger
}

// NewHandler parses the schema against the resolver and returns a Handler.
func NewHandler(resolver *Resolver, log zerolog.Logger) *Handler {
	return &Handler{
		schema: graphql.MustParseSchema(Schema, resolver),
		log:    log,
	}
}

// ServeHTTP accepts POST with an application/json body, or GET with the
// query document in the query string.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	response := h.schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)

	body, err := json.Marshal(response)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to marshal graphql response")
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func decodeRequest(r *http.Request) (*request, error) {
	req := &request{}

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		req.Query = query.Get("query")
		req.OperationName = query.Get("operationName")
		if raw := query.Get("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				return nil, errNotAGraphQLRequest
			}
		}
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			return nil, errNotAGraphQLRequest
		}
	default:
		return nil, errBadMethod
	}

	return req, nil
}

type handlerError string

func (e handlerError) Error() string { return string(e) }

const (
	errNotAGraphQLRequest = handlerError("Not a valid GraphQL request body")
	errBadMethod          = handlerError("Please use GET or POST for GraphQL requests")
)

// writeErrorResponse writes a GraphQL-spec error envelope.
func writeErrorResponse(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"errors": []map[string]string{{"message": msg}},
		"data":   nil,
	})
}
