package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"github.com/dmitrymomot/ghprofile/pkg/profile"
	"github.com/dmitrymomot/ghprofile/pkg/transport"
)

// Service fetches profiles from the GitHub REST API. It never caches.
type Service struct {
	sender transport.Sender
	opts   *options
}

// NewService creates a Service that sends requests through sender.
func NewService(sender transport.Sender, opts ...Option) *Service {
	return &Service{
		sender: sender,
		opts:   newOptions(opts...),
	}
}

// FetchProfile loads the repositories and user record of username.
//
// The repositories call decides the outcome: 404 is ErrUserNotFound, any
// other non-2xx status or transport failure is ErrNetworkFailure, and an
// undecodable body is ErrInvalidResponse. The user call runs concurrently
// and never fails the fetch; when it does not succeed the user is taken
// from the first repository owner, or from the input when there are no
// repositories. Repositories are sorted by case-folded name.
func (s *Service) FetchProfile(ctx context.Context, username string) (profile.Profile, error) {
	name := strings.TrimSpace(username)
	if name == "" {
		return profile.Profile{}, profile.ErrUserNotFound
	}

	var (
		repos   []profile.Repository
		user    profile.User
		userErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		repos, err = s.fetchRepositories(gctx, name)
		return err
	})
	g.Go(func() error {
		user, userErr = s.fetchUser(gctx, name)
		return nil
	})
	if err := g.Wait(); err != nil {
		return profile.Profile{}, err
	}

	if userErr != nil {
		s.opts.logger.DebugContext(ctx, "github user lookup failed, using fallback",
			slog.String("username", name),
			slog.String("error", userErr.Error()),
		)
		user = fallbackUser(name, repos)
	}

	sortRepositories(repos)

	return profile.Profile{User: user, Repositories: repos}, nil
}

func (s *Service) fetchRepositories(ctx context.Context, name string) ([]profile.Repository, error) {
	resp, err := s.get(ctx, "/users/"+url.PathEscape(name)+"/repos")
	if err != nil {
		s.opts.logger.WarnContext(ctx, "github repositories request failed",
			slog.String("username", name),
			slog.String("error", err.Error()),
		)
		return nil, errors.Join(profile.ErrNetworkFailure, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.Join(profile.ErrUserNotFound, statusError(resp.StatusCode))
	case !isSuccess(resp.StatusCode):
		s.opts.logger.WarnContext(ctx, "github repositories request rejected",
			slog.String("username", name),
			slog.Int("status", resp.StatusCode),
		)
		return nil, errors.Join(profile.ErrNetworkFailure, statusError(resp.StatusCode))
	}

	var dtos *[]repositoryDTO
	if err := json.Unmarshal(resp.Body, &dtos); err != nil {
		return nil, errors.Join(profile.ErrInvalidResponse, fmt.Errorf("decode repositories: %w", err))
	}
	if dtos == nil {
		return nil, errors.Join(profile.ErrInvalidResponse, errors.New("decode repositories: null body"))
	}

	repos := make([]profile.Repository, 0, len(*dtos))
	for i, d := range *dtos {
		r, err := d.toDomain()
		if err != nil {
			return nil, errors.Join(profile.ErrInvalidResponse, fmt.Errorf("repository %d: %w", i, err))
		}
		repos = append(repos, r)
	}

	return repos, nil
}

func (s *Service) fetchUser(ctx context.Context, name string) (profile.User, error) {
	resp, err := s.get(ctx, "/users/"+url.PathEscape(name))
	if err != nil {
		return profile.User{}, err
	}
	if !isSuccess(resp.StatusCode) {
		return profile.User{}, statusError(resp.StatusCode)
	}

	var dto userDTO
	if err := json.Unmarshal(resp.Body, &dto); err != nil {
		return profile.User{}, fmt.Errorf("decode user: %w", err)
	}

	return dto.toDomain()
}

func (s *Service) get(ctx context.Context, path string) (*transport.Response, error) {
	h := http.Header{}
	h.Set("Accept", "application/vnd.github+json")
	h.Set("X-GitHub-Api-Version", APIVersion)

	return s.sender.Send(ctx, &transport.Request{
		URL:     s.opts.baseURL + path,
		Method:  http.MethodGet,
		Timeout: s.opts.timeout,
		Header:  h,
	})
}

// fallbackUser derives the user from API order, before sorting.
func fallbackUser(name string, repos []profile.Repository) profile.User {
	if len(repos) > 0 {
		return profile.UserFromOwner(repos[0].Owner)
	}
	return profile.NewUser(name, "", "")
}

func sortRepositories(repos []profile.Repository) {
	fold := cases.Fold()
	slices.SortStableFunc(repos, func(a, b profile.Repository) int {
		return strings.Compare(fold.String(a.Name), fold.String(b.Name))
	})
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func statusError(code int) error {
	return fmt.Errorf("%w: %d", ErrUnexpectedStatus, code)
}

var _ profile.Fetcher = (*Service)(nil)
