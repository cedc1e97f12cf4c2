// Package github implements the profile fetcher on top of the GitHub REST API.
//
// A fetch issues two GET requests through a [transport.Sender]:
//
//	GET {base}/users/{username}/repos
//	GET {base}/users/{username}
//
// The first one decides success or failure. The second one only enriches the
// result: when it fails, the user is synthesized from the first repository
// owner or, with no repositories, from the requested name.
//
//	svc := github.NewService(transport.New(),
//	    github.WithRequestTimeout(10 * time.Second),
//	)
//	p, err := svc.FetchProfile(ctx, "octocat")
//	switch {
//	case errors.Is(err, profile.ErrUserNotFound):
//	case errors.Is(err, profile.ErrNetworkFailure):
//	case errors.Is(err, profile.ErrInvalidResponse):
//	}
//
// The service does not cache, retry or authenticate.
package github
