package testhelpers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	chiMw "github.com/go-chi/chi/v5/middleware"
)

// Reply is a canned response of the fake REST server.
type Reply struct {
	Status      int
	ContentType string
	Body        string
}

// Route maps a method and a path below the server prefix to a reply.
type Route struct {
	Method string
	Path   string
	Reply  Reply
}

// RecordedRequest is a request received by the fake REST server.
type RecordedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Body        string
}

// RESTServer is a fake REST service mounted below a path prefix.
type RESTServer struct {
	*httptest.Server
	prefix string

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewRESTServer starts a fake REST service serving routes below prefix, e.g. "/rest".
// Duplicate slashes in request paths are collapsed before routing, the way most servers do.
// The server is closed when the test finishes.
func NewRESTServer(t *testing.T, prefix string, routes ...Route) *RESTServer {
	t.Helper()

	s := &RESTServer{prefix: strings.TrimSuffix(prefix, "/")}

	router := chi.NewRouter()
	router.Use(s.record)
	router.Use(chiMw.CleanPath)
	for _, route := range routes {
		reply := route.Reply
		router.MethodFunc(route.Method, s.prefix+route.Path, func(w http.ResponseWriter, r *http.Request) {
			contentType := reply.ContentType
			if contentType == "" {
				contentType = "application/xml"
			}
			status := reply.Status
			if status == 0 {
				status = http.StatusOK
			}

			w.Header().Set("Content-Type", contentType)
			w.WriteHeader(status)
			if _, err := w.Write([]byte(reply.Body)); err != nil {
				t.Errorf("Error writing response: %v", err)
			}
		})
	}

	s.Server = httptest.NewServer(router)
	t.Cleanup(s.Close)

	return s
}

// BaseURI returns the REST base URI of the server, ending with a slash.
func (s *RESTServer) BaseURI() string {
	return s.URL + s.prefix + "/"
}

// Requests returns the requests received so far, in order.
func (s *RESTServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]RecordedRequest, len(s.requests))
	copy(res, s.requests)
	return res
}

func (s *RESTServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			RawQuery:    r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
			Body:        string(body),
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// MockTransportWithReadError returns a successful XML response whose body fails on read.
type MockTransportWithReadError struct{}

func (t *MockTransportWithReadError) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		Status:     "200 OK",
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/xml"}},
		Body:       &MockBodyWithReadError{},
		Request:    req,
	}, nil
}

type MockBodyWithReadError struct{}

func (b *MockBodyWithReadError) Close() error {
	return nil
}

func (b *MockBodyWithReadError) Read(p []byte) (n int, err error) {
	return 0, io.ErrUnexpectedEOF
}
