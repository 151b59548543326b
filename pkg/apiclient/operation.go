package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/marmos91/fedctl/internal/telemetry"
)

// ============================================================================
// Declarative operations
// ============================================================================
//
// A Resource is a base path plus a static table of Operations. Resource
// methods (ListOpenIDFederations, GetRealm, ...) never build requests by
// hand; they name an operation and let Execute do the rest:
//
//	out, err := c.Execute(ctx, openIDFederations, "findOne", Params{"internalId": id}, nil, &rep)

// Operation names shared by most resources.
const (
	OpFind    = "find"
	OpFindOne = "findOne"
	OpCreate  = "create"
	OpUpdate  = "update"
	OpDelete  = "del"
)

// Operation declares one HTTP call.
type Operation struct {
	// Method is the HTTP method.
	Method string

	// Path is appended to the resource's base path and may contain
	// {name} placeholders.
	Path string

	// URLParamKeys are the placeholders the caller must supply. Resource
	// level placeholders such as {realm} are filled by the client.
	URLParamKeys []string

	// CatchNotFound turns a 404 into an absent result instead of an error.
	CatchNotFound bool

	// ReturnResourceIDInLocationHeader, when set, builds the result from
	// the last segment of the Location response header.
	ReturnResourceIDInLocationHeader *LocationRule
}

// LocationRule names the field the created id is returned under.
type LocationRule struct {
	Field string
}

// Resource is a base path template and the operations declared on it.
type Resource struct {
	Name       string
	BasePath   string
	Operations map[string]Operation
}

// Operation looks up a declared operation by name.
func (r Resource) Operation(name string) (Operation, error) {
	op, ok := r.Operations[name]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %s.%s", ErrUnknownOperation, r.Name, name)
	}
	return op, nil
}

// OperationNames returns the declared operation names in sorted order.
func (r Resource) OperationNames() []string {
	names := make([]string, 0, len(r.Operations))
	for name := range r.Operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Params holds path placeholder values.
type Params map[string]string

// Outcome describes how an executed operation completed.
type Outcome struct {
	// Status is the HTTP status code of the response.
	Status int

	// Absent is true when CatchNotFound absorbed a 404.
	Absent bool

	// ResourceID holds {Field: id} when the Location rule applied.
	ResourceID map[string]string
}

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Execute runs the named operation of res. body is sent as JSON for writes;
// result receives the decoded response body when non-nil.
func (c *Client) Execute(ctx context.Context, res Resource, name string, params Params, body, result any) (*Outcome, error) {
	op, err := res.Operation(name)
	if err != nil {
		return nil, err
	}

	p, err := c.resolvePath(res.BasePath+op.Path, op.URLParamKeys, params)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", res.Name, name, err)
	}

	ctx, span := telemetry.StartSpan(ctx, res.Name+"."+name)
	span.SetAttributes(telemetry.Resource(res.Name), telemetry.Operation(name), telemetry.Realm(c.realm))
	defer span.End()

	var writeBody any
	if op.Method == http.MethodPost || op.Method == http.MethodPut || op.Method == http.MethodPatch {
		writeBody = body
	}

	start := time.Now()
	resp, err := c.do(ctx, op.Method, p, writeBody, result)
	status := 0
	if resp != nil {
		status = resp.status
	}
	if c.metrics != nil {
		c.metrics.ObserveRequest(res.Name, name, status, time.Since(start))
	}

	if err != nil {
		if op.CatchNotFound && IsNotFound(err) {
			return &Outcome{Status: http.StatusNotFound, Absent: true}, nil
		}
		return nil, err
	}

	out := &Outcome{Status: status}
	if rule := op.ReturnResourceIDInLocationHeader; rule != nil {
		id, err := idFromLocation(resp.header.Get("Location"))
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", res.Name, name, err)
		}
		out.ResourceID = map[string]string{rule.Field: id}
	}
	return out, nil
}

// resolvePath substitutes placeholders in tmpl. Every declared key must be
// present and non-empty, and no placeholder may be left unfilled.
func (c *Client) resolvePath(tmpl string, required []string, params Params) (string, error) {
	values := make(map[string]string, len(params)+1)
	if c.realm != "" {
		values["realm"] = c.realm
	}
	for k, v := range params {
		values[k] = v
	}

	for _, key := range required {
		if values[key] == "" {
			return "", fmt.Errorf("%w: %s", ErrMissingParam, key)
		}
	}

	var missing []string
	resolved := placeholderPattern.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := m[1 : len(m)-1]
		v, ok := values[key]
		if !ok || v == "" {
			missing = append(missing, key)
			return m
		}
		return url.PathEscape(v)
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, strings.Join(missing, ", "))
	}
	return resolved, nil
}

// idFromLocation returns the unescaped last path segment of a Location
// header value.
func idFromLocation(location string) (string, error) {
	if location == "" {
		return "", ErrNoLocation
	}
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoLocation, err)
	}
	seg := path.Base(strings.TrimRight(u.EscapedPath(), "/"))
	if seg == "." || seg == "/" || seg == "" {
		return "", ErrNoLocation
	}
	id, err := url.PathUnescape(seg)
	if err != nil {
		return "", errors.Join(ErrNoLocation, err)
	}
	return id, nil
}
