package listview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
)

// RESTCollection adapts one remote REST collection endpoint to the
// controller's Source/PagedSource contract and to its mutation operations.
// The endpoint speaks JSON with an optional {"data": ...} envelope; paginated
// listings carry current_page/total/per_page/last_page alongside data.
type RESTCollection[T any] struct {
	Client  *http.Client
	BaseURL string
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type pagedEnvelope[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"current_page"`
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
	LastPage    int `json:"last_page"`
}

type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func (rc *RESTCollection[T]) client() *http.Client {
	if rc.Client != nil {
		return rc.Client
	}
	return http.DefaultClient
}

// Fetch loads the whole collection for scope.
func (rc *RESTCollection[T]) Fetch(ctx context.Context, scope Scope) ([]T, error) {
	body, err := rc.get(ctx, scope, 0, 0)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Data != nil {
		body = env.Data
	}
	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("listview: decode collection: %w", err)
	}
	return items, nil
}

// FetchPage loads one server-side page for scope.
func (rc *RESTCollection[T]) FetchPage(ctx context.Context, scope Scope, page, perPage int) (Page[T], error) {
	body, err := rc.get(ctx, scope, page, perPage)
	if err != nil {
		return Page[T]{}, err
	}
	var env pagedEnvelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return Page[T]{}, fmt.Errorf("listview: decode page: %w", err)
	}
	return Page[T]{
		Items:       env.Data,
		CurrentPage: env.CurrentPage,
		Total:       env.Total,
		PerPage:     env.PerPage,
		LastPage:    env.LastPage,
	}, nil
}

// Create POSTs a JSON payload to the collection.
func (rc *RESTCollection[T]) Create(ctx context.Context, payload any) error {
	return rc.send(ctx, http.MethodPost, rc.BaseURL, payload)
}

// Update PUTs a JSON payload to the entity resource.
func (rc *RESTCollection[T]) Update(ctx context.Context, id int64, payload any) error {
	return rc.send(ctx, http.MethodPut, rc.memberURL(id), payload)
}

// Delete removes the entity resource.
func (rc *RESTCollection[T]) Delete(ctx context.Context, id int64) error {
	return rc.send(ctx, http.MethodDelete, rc.memberURL(id), nil)
}

func (rc *RESTCollection[T]) memberURL(id int64) string {
	return rc.BaseURL + "/" + strconv.FormatInt(id, 10)
}

func (rc *RESTCollection[T]) get(ctx context.Context, scope Scope, page, perPage int) ([]byte, error) {
	u, err := url.Parse(rc.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("listview: parse url: %w", err)
	}
	q := u.Query()
	for k, v := range scope {
		q.Set(k, v)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(perPage))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := rc.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp.StatusCode, body)
	}
	return body, nil
}

func (rc *RESTCollection[T]) send(ctx context.Context, method, target string, payload any) error {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := rc.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, body)
	}
	return nil
}

// decodeError maps an error response body to the controller's error types.
// A nested errors.<field>[0] message marks a dependent-record conflict and is
// surfaced verbatim; a top-level message becomes a RequestError.
func decodeError(status int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	if len(eb.Errors) > 0 {
		keys := make([]string, 0, len(eb.Errors))
		for k := range eb.Errors {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if msgs := eb.Errors[k]; len(msgs) > 0 && msgs[0] != "" {
				return &ConflictError{Message: msgs[0]}
			}
		}
	}
	return &RequestError{Status: status, Message: eb.Message}
}
