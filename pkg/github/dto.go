package github

import (
	"errors"
	"net/url"

	"github.com/dmitrymomot/ghprofile/pkg/profile"
)

// Wire shapes of the GitHub REST API. Required fields are pointers so a
// missing key can be told apart from a zero value.

type ownerDTO struct {
	Login     *string `json:"login"`
	AvatarURL *string `json:"avatar_url"`
}

type repositoryDTO struct {
	ID          *int64    `json:"id"`
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Language    *string   `json:"language"`
	HTMLURL     *string   `json:"html_url"`
	Owner       *ownerDTO `json:"owner"`
}

type userDTO struct {
	Login     *string `json:"login"`
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

var (
	errMissingField = errors.New("missing required field")
	errInvalidURL   = errors.New("invalid url")
)

func (d repositoryDTO) toDomain() (profile.Repository, error) {
	if d.ID == nil || d.Name == nil || d.HTMLURL == nil || d.Owner == nil {
		return profile.Repository{}, errMissingField
	}
	if !validURL(*d.HTMLURL) {
		return profile.Repository{}, errInvalidURL
	}

	owner, err := d.Owner.toDomain()
	if err != nil {
		return profile.Repository{}, err
	}

	return profile.Repository{
		ID:          *d.ID,
		Name:        *d.Name,
		Description: d.Description,
		Language:    d.Language,
		HTMLURL:     *d.HTMLURL,
		Owner:       owner,
	}, nil
}

func (d ownerDTO) toDomain() (profile.Owner, error) {
	if d.Login == nil {
		return profile.Owner{}, errMissingField
	}
	return profile.Owner{
		Login:     *d.Login,
		AvatarURL: optionalURL(d.AvatarURL),
	}, nil
}

func (d userDTO) toDomain() (profile.User, error) {
	if d.Login == nil {
		return profile.User{}, errMissingField
	}

	var name string
	if d.Name != nil {
		name = *d.Name
	}

	return profile.NewUser(*d.Login, name, optionalURL(d.AvatarURL)), nil
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// optionalURL drops absent or unparsable avatar URLs.
func optionalURL(s *string) string {
	if s == nil || !validURL(*s) {
		return ""
	}
	return *s
}
