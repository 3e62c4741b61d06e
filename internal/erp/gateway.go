// Package erp executes ERP integration descriptors against the upstream
// NovaERP REST API. Descriptors are data, not code: each one names an
// endpoint, its parameters, the roles allowed to call it, and an optional
// remapping of the upstream response into a flat, caller-friendly shape.
package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/asknova/go-assist-backend/internal/domain"
)

// MissingValue marks a remapped field whose source path was absent from the
// upstream response body.
const MissingValue = "undefined"

// Result is the outcome of executing a descriptor. Failures are carried as
// data (OK=false plus a human-readable Message), never as raw upstream
// errors, so callers can fold them straight into a response text.
type Result struct {
	OK            bool           `json:"ok"`
	Integration   string         `json:"integration"`
	Data          map[string]any `json:"data,omitempty"`
	Message       string         `json:"message,omitempty"`
	MissingParams []string       `json:"missing_params,omitempty"`

	// Unavailable distinguishes upstream/network failures from refusals
	// (permission, missing parameters). Refusals are terminal answers;
	// unavailability is an error outcome the caller may surface differently.
	Unavailable bool `json:"-"`
}

// Gateway calls the upstream ERP API on behalf of integration descriptors.
type Gateway struct {
	baseURL   string
	apiKey    string
	authToken string
	client    *http.Client
}

// Options configures NewGateway. Timeout defaults to 10s when unset.
type Options struct {
	BaseURL   string
	APIKey    string
	AuthToken string
	Timeout   time.Duration
}

// NewGateway builds a Gateway from Options.
func NewGateway(opts Options) *Gateway {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Gateway{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		apiKey:    opts.APIKey,
		authToken: opts.AuthToken,
		client:    &http.Client{Timeout: timeout},
	}
}

// Execute runs one descriptor with the given caller role and parameters.
//
// Authorization is fail-closed: a role outside the descriptor's access list
// yields OK=false without touching the network. Parameter validation is
// batched so the caller learns every missing required parameter at once.
// Network and upstream failures come back as OK=false results.
func (g *Gateway) Execute(ctx context.Context, integ *domain.ERPIntegration, role string, params map[string]any) Result {
	res := Result{Integration: integ.Name}

	if !integ.AllowsRole(role) {
		res.Message = fmt.Sprintf("You don't have permission to access %s.", integ.Name)
		return res
	}

	var missing []string
	for _, p := range integ.Parameters {
		if !p.Required {
			continue
		}
		v, ok := params[p.Name]
		if !ok || v == nil || fmt.Sprintf("%v", v) == "" {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		res.MissingParams = missing
		res.Message = fmt.Sprintf("Missing required information: %s.", strings.Join(missing, ", "))
		return res
	}

	body, err := g.call(ctx, integ, params)
	if err != nil {
		res.Unavailable = true
		res.Message = fmt.Sprintf("I couldn't reach the %s service right now. Please try again later.", integ.Module)
		return res
	}

	res.OK = true
	res.Data = Remap(body, integ.ResponseMapping)
	return res
}

func (g *Gateway) call(ctx context.Context, integ *domain.ERPIntegration, params map[string]any) (map[string]any, error) {
	method := strings.ToUpper(integ.Method)
	if method == "" {
		method = http.MethodGet
	}

	target := g.baseURL + integ.Endpoint
	var reqBody io.Reader

	if method == http.MethodGet {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, fmt.Sprintf("%v", v))
		}
		if enc := q.Encode(); enc != "" {
			target += "?" + enc
		}
	} else {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.apiKey != "" {
		req.Header.Set("X-API-KEY", g.apiKey)
	}
	if g.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+g.authToken)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("erp: upstream status %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}

// Remap projects an upstream response through a {field: dotted.source.path}
// mapping. Absent source paths map to MissingValue rather than being dropped,
// so callers can tell "field missing upstream" from "field not mapped". An
// empty mapping returns the body unchanged.
func Remap(body map[string]any, mapping map[string]string) map[string]any {
	if len(mapping) == 0 {
		return body
	}
	out := make(map[string]any, len(mapping))
	for field, path := range mapping {
		if v, ok := lookupPath(body, path); ok {
			out[field] = v
		} else {
			out[field] = MissingValue
		}
	}
	return out
}

func lookupPath(body map[string]any, path string) (any, bool) {
	cur := any(body)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
