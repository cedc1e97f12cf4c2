// Package transport performs single HTTP requests with a bounded lifetime.
//
// [Sender] is the seam between the GitHub service and the network: the
// service builds a [Request], the sender returns the status, headers and the
// fully read body. Non-2xx statuses are responses, not errors. Anything that
// prevents a response (dial failures, timeouts, cancellation) is returned
// joined with [ErrTransport].
//
// [Client] is the production Sender. It applies the request timeout (or
// [DefaultTimeout], 15 seconds) through the request context, so cancelling
// the caller's context aborts the call as well.
//
//	c := transport.New(transport.WithUserAgent("ghprofile"))
//	resp, err := c.Send(ctx, &transport.Request{
//	    URL:    "https://api.github.com/users/octocat/repos",
//	    Header: http.Header{"Accept": {"application/vnd.github+json"}},
//	})
//	if errors.Is(err, transport.ErrTransport) {
//	    // no response at all
//	}
package transport
