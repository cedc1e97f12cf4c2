package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Request describes a single HTTP call.
type Request struct {
	Header  http.Header
	URL     string
	Method  string // defaults to GET
	Body    []byte
	Timeout time.Duration // zero means the client default
}

// Response is a fully read HTTP response.
// Any status code is a valid response; interpreting it is up to the caller.
type Response struct {
	Header     http.Header
	Body       []byte
	StatusCode int
}

// Sender performs requests. Implementations must honor ctx cancellation.
type Sender interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// Client is a Sender backed by *http.Client.
type Client struct {
	http *http.Client
	opts *options
}

// New creates a Client.
//
// Example:
//
//	c := transport.New(
//	    transport.WithTimeout(10 * time.Second),
//	    transport.WithUserAgent("ghprofile/1.0"),
//	)
//	resp, err := c.Send(ctx, &transport.Request{URL: "https://api.github.com/users/octocat"})
func New(opts ...Option) *Client {
	o := newOptions(opts...)

	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{}
	}

	return &Client{http: hc, opts: o}
}

// Send issues req and reads the whole response body.
// The request is bounded by req.Timeout, or the client timeout when unset.
// Every failure is joined with ErrTransport, except malformed requests
// which are joined with ErrInvalidRequest.
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.Join(ErrInvalidRequest, errors.New("nil request"))
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.opts.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, errors.Join(ErrInvalidRequest, err)
	}
	for k, vals := range req.Header {
		for _, v := range vals {
			httpReq.Header.Add(k, v)
		}
	}
	if c.opts.userAgent != "" && httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", c.opts.userAgent)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Join(ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.maxBodySize+1))
	if err != nil {
		return nil, errors.Join(ErrTransport, fmt.Errorf("read body: %w", err))
	}
	if int64(len(data)) > c.opts.maxBodySize {
		return nil, errors.Join(ErrTransport, fmt.Errorf("response body exceeds %d bytes", c.opts.maxBodySize))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

var _ Sender = (*Client)(nil)
