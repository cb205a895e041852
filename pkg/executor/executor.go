// Package executor calls the REST service described by a request spec and
// returns the pretty-printed XML reply.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/cubahno/restdoc/pkg/request"
	"github.com/cubahno/restdoc/pkg/xmldoc"
)

const (
	// ContentTypeXML is the content type of request bodies.
	ContentTypeXML = "text/xml; charset=UTF-8"

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "restdoc/1.0"
)

// Config configures an Executor.
// BaseURI is a plain prefix: service and method are appended to it byte by byte.
// Timeout of 0 means no timeout.
// Transport replaces the default HTTP transport.
type Config struct {
	BaseURI   string
	Timeout   time.Duration
	UserAgent string
	Transport http.RoundTripper
}

// Executor performs the HTTP exchange for one request spec.
// It is not safe for concurrent use and must be closed after use.
type Executor struct {
	baseURI   string
	userAgent string
	client    *http.Client
	printer   *xmldoc.Printer
}

// New validates cfg and creates an executor with its own HTTP client.
func New(cfg Config) (*Executor, error) {
	if strings.TrimSpace(cfg.BaseURI) == "" {
		return nil, fmt.Errorf("%w: REST base URI is not set", ErrFatalConfig)
	}

	transport := cfg.Transport
	if transport == nil {
		defaultTransport, ok := http.DefaultTransport.(*http.Transport)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected default transport %T", ErrFatalConfig, http.DefaultTransport)
		}
		transport = defaultTransport.Clone()
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Executor{
		baseURI:   cfg.BaseURI,
		userAgent: userAgent,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		printer: xmldoc.NewPrinter(),
	}, nil
}

// Close releases the connections held by the HTTP client.
func (e *Executor) Close() error {
	e.client.CloseIdleConnections()
	return nil
}

// Retrieve performs the request described by spec and returns the reply as pretty-printed XML.
//
// For POST requests with a body URI, the body document is fetched first with GET and
// its example content is sent as the request body. The reply is reduced to its example
// content when it has one, otherwise the whole document is returned.
func (e *Executor) Retrieve(ctx context.Context, spec *request.Spec) (string, error) {
	if spec == nil {
		return "", fmt.Errorf("%w: no request", request.ErrBadSpec)
	}
	if err := spec.Validate(); err != nil {
		return "", err
	}

	uri, err := spec.URI(e.baseURI)
	if err != nil {
		return "", err
	}

	var body []byte
	if bodyURL := spec.BodyURL(e.baseURI); bodyURL != "" {
		body, err = e.fetchBody(ctx, bodyURL)
		if err != nil {
			return "", err
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, spec.Verb.String(), uri, reader)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRequest, uri, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", ContentTypeXML)
	}

	doc, err := e.do(req, uri)
	if err != nil {
		return "", err
	}

	if el := xmldoc.ExampleContent(doc); el != nil {
		return e.printer.Element(el)
	}

	slog.Debug("No example content, using the whole document", "url", uri)
	return e.printer.Document(doc)
}

// fetchBody retrieves the document at bodyURL and returns its example content as XML.
func (e *Executor) fetchBody(ctx context.Context, bodyURL string) ([]byte, error) {
	slog.Debug("Retrieving body", "url", bodyURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bodyURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRequest, bodyURL, err)
	}

	doc, err := e.do(req, bodyURL)
	if err != nil {
		return nil, err
	}

	el := xmldoc.ExampleContent(doc)
	if el == nil {
		return nil, fmt.Errorf("%w returned by url: %s", ErrNoExample, bodyURL)
	}

	content, err := e.printer.Element(el)
	if err != nil {
		return nil, err
	}

	return []byte(content), nil
}

// do executes req and parses a successful reply as XML.
func (e *Executor) do(req *http.Request, uri string) (*etree.Document, error) {
	req.Header.Set("User-Agent", e.userAgent)

	slog.Debug("Calling url", "method", req.Method, "url", uri)
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrRequest, req.Method, uri, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &UpstreamError{
			URL:        uri,
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
		}
	}

	doc, err := xmldoc.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse the response from url %s: %w", uri, err)
	}

	return doc, nil
}

func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
