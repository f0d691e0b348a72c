package runpod

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-openapi/runtime"
	httptransport "github.com/go-openapi/runtime/client"
	"github.com/go-openapi/strfmt"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

// maxErrorBodySize limits how much of an error response body is kept on
// [Error.Body]. 4KB is enough for any error envelope the API returns.
const maxErrorBodySize = 4096

// Target selects which RunPod API a [Request] is sent to.
type Target int

const (
	// TargetREST is the management REST API (pods, endpoints, templates, ...).
	TargetREST Target = iota
	// TargetServerless is the serverless job API.
	TargetServerless
	// TargetGraphQL is the GraphQL API.
	TargetGraphQL
)

func (t Target) String() string {
	switch t {
	case TargetServerless:
		return "serverless"
	case TargetGraphQL:
		return "graphql"
	default:
		return "rest"
	}
}

// Request describes a single API call.
type Request struct {
	// Op names the operation for errors, logs and metrics, e.g. "pods.get".
	Op string

	// Target selects the base URL. Defaults to [TargetREST].
	Target Target

	Method string

	// Path is relative to the target's base URL and may contain {name}
	// placeholders filled from PathParams.
	Path       string
	PathParams map[string]string

	Query url.Values

	// Body is encoded as JSON when non-nil.
	Body interface{}
}

// RawResponse is a successful (2xx) response.
type RawResponse struct {
	Status    int
	Body      []byte
	RequestID string
}

// Transport sends requests to the RunPod APIs.
//
// A Transport holds one go-openapi runtime per base URL and is safe for
// concurrent use. Services use it through [Client]; it is exported for calls
// the SDK does not cover yet.
type Transport struct {
	cfg       *Config
	userAgent string
	log       zerolog.Logger
	auth      runtime.ClientAuthInfoWriter

	rest       runtime.ClientTransport
	serverless runtime.ClientTransport
	graphql    runtime.ClientTransport
}

type transportOptions struct {
	httpClient *http.Client
	userAgent  string
	log        zerolog.Logger
	debug      bool
	telemetry  *telemetry
}

func newTransport(cfg *Config, o transportOptions) (*Transport, error) {
	t := &Transport{
		cfg:       cfg,
		userAgent: o.userAgent,
		log:       o.log,
		auth:      httptransport.BearerToken(cfg.APIKey()),
	}

	build := func(target Target, raw string) (runtime.ClientTransport, error) {
		rt, err := newRuntime(raw, o.httpClient, runtimeLogger{log: o.log, secret: cfg.APIKey(), masked: cfg.MaskedAPIKey()}, o.debug)
		if err != nil {
			return nil, err
		}
		return o.telemetry.wrap(target, rt), nil
	}

	var err error
	if t.rest, err = build(TargetREST, cfg.RESTURL()); err != nil {
		return nil, err
	}
	if t.serverless, err = build(TargetServerless, cfg.APIURL()); err != nil {
		return nil, err
	}
	if t.graphql, err = build(TargetGraphQL, cfg.GraphQLURL()); err != nil {
		return nil, err
	}
	return t, nil
}

func newRuntime(raw string, httpClient *http.Client, log runtimeLogger, debug bool) (*httptransport.Runtime, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, configError("invalid base URL "+raw, err)
	}
	rt := httptransport.NewWithClient(u.Host, u.Path, []string{u.Scheme}, mediaTypeSafe(httpClient))
	// Error bodies are not always served as JSON.
	rt.Consumers["*/*"] = runtime.JSONConsumer()
	rt.SetLogger(log)
	rt.SetDebug(debug)
	return rt, nil
}

// mediaTypeSafe returns a copy of c whose responses always carry a
// Content-Type the runtime can parse. The runtime fails on a malformed one
// before the response reader runs, which would hide the status code.
func mediaTypeSafe(c *http.Client) *http.Client {
	if c == nil {
		c = http.DefaultClient
	}
	next := c.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	safe := *c
	safe.Transport = mediaTypeFixer{next: next}
	return &safe
}

type mediaTypeFixer struct {
	next http.RoundTripper
}

func (f mediaTypeFixer) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := f.next.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	if ct := resp.Header.Get(runtime.HeaderContentType); ct != "" {
		if _, _, perr := mime.ParseMediaType(ct); perr != nil {
			resp.Header.Set(runtime.HeaderContentType, runtime.DefaultMime)
		}
	}
	return resp, nil
}

// runtimeLogger routes the go-openapi runtime's own output to zerolog.
// Debug dumps carry the Authorization header, so the key is masked.
type runtimeLogger struct {
	log    zerolog.Logger
	secret string
	masked string
}

func (l runtimeLogger) redact(format string, args []interface{}) string {
	msg := fmt.Sprintf(format, args...)
	if l.secret == "" {
		return msg
	}
	return strings.ReplaceAll(msg, l.secret, l.masked)
}

func (l runtimeLogger) Printf(format string, args ...interface{}) {
	l.log.Info().Msg(l.redact(format, args))
}

func (l runtimeLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug().Msg(l.redact(format, args))
}

func (t *Transport) submitter(target Target) runtime.ClientTransport {
	switch target {
	case TargetServerless:
		return t.serverless
	case TargetGraphQL:
		return t.graphql
	default:
		return t.rest
	}
}

// Send performs req once and returns the raw 2xx response.
//
// Non-2xx responses become [KindAPI] errors. Connection failures, timeouts
// and cancellation become [KindTransport] errors. Nothing is retried.
func (t *Transport) Send(ctx context.Context, req Request) (*RawResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout())
	defer cancel()

	requestID := xid.New().String()
	log := t.log.With().
		Str("op", req.Op).
		Str("api", req.Target.String()).
		Str("method", req.Method).
		Str("path", req.Path).
		Str("request_id", requestID).
		Logger()

	op := &runtime.ClientOperation{
		ID:                 req.Op,
		Method:             req.Method,
		PathPattern:        req.Path,
		ProducesMediaTypes: []string{runtime.JSONMime},
		ConsumesMediaTypes: []string{runtime.JSONMime},
		AuthInfo:           t.auth,
		Params: runtime.ClientRequestWriterFunc(func(r runtime.ClientRequest, _ strfmt.Registry) error {
			if err := r.SetTimeout(t.cfg.Timeout()); err != nil {
				return err
			}
			if err := r.SetHeaderParam("User-Agent", t.userAgent); err != nil {
				return err
			}
			if err := r.SetHeaderParam("X-Request-Id", requestID); err != nil {
				return err
			}
			for name, value := range req.PathParams {
				if err := r.SetPathParam(name, value); err != nil {
					return err
				}
			}
			for name, values := range req.Query {
				if err := r.SetQueryParam(name, values...); err != nil {
					return err
				}
			}
			if req.Body != nil {
				return r.SetBodyParam(req.Body)
			}
			return nil
		}),
		Reader: runtime.ClientResponseReaderFunc(func(resp runtime.ClientResponse, _ runtime.Consumer) (interface{}, error) {
			body, err := io.ReadAll(resp.Body())
			if err != nil {
				return nil, newError(KindTransport, req.Op, "TRANSPORT", "reading response body", 0, err)
			}
			if resp.Code() < 200 || resp.Code() > 299 {
				return nil, apiError(req.Op, resp.Code(), body)
			}
			return &RawResponse{Status: resp.Code(), Body: body, RequestID: requestID}, nil
		}),
		Context: ctx,
	}

	log.Debug().Msg("sending request")
	start := time.Now()

	result, err := t.submitter(req.Target).Submit(op)
	if err != nil {
		var rpErr *Error
		if !errors.As(err, &rpErr) {
			rpErr = newError(KindTransport, req.Op, "TRANSPORT", "request failed", 0, err)
		}
		log.Warn().
			Err(err).
			Int("status", rpErr.Status).
			Dur("duration", time.Since(start)).
			Msg("request failed")
		return nil, rpErr
	}

	resp, ok := result.(*RawResponse)
	if !ok {
		return nil, newError(KindDecode, req.Op, "DECODE", "unexpected response type", 0, nil)
	}
	log.Debug().
		Int("status", resp.Status).
		Dur("duration", time.Since(start)).
		Msg("received response")
	return resp, nil
}

// do sends req and decodes the JSON body into out. A nil out discards the body.
func (t *Transport) do(ctx context.Context, req Request, out interface{}) error {
	resp, err := t.Send(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(req.Op, resp, out)
}

func decode(op string, resp *RawResponse, out interface{}) error {
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return &Error{
			Kind:    KindDecode,
			Op:      op,
			Code:    "DECODE",
			Message: "invalid response body",
			Status:  resp.Status,
			Body:    truncate(resp.Body, maxErrorBodySize),
			Cause:   err,
		}
	}
	return nil
}
