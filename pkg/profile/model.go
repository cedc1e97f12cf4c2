package profile

// Profile is a user's public metadata together with their repositories.
// A Profile is a snapshot: every fetch builds a new one and nothing
// mutates it afterwards, which is why cached copies can be shared.
type Profile struct {
	User         User         `json:"user"`
	Repositories []Repository `json:"repositories"`
}

// User is the profile owner as shown to callers.
type User struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"` // empty when unknown
}

// Repository is a single public repository. ID is unique per owner.
type Repository struct {
	Description *string `json:"description,omitempty"`
	Language    *string `json:"language,omitempty"`
	Name        string  `json:"name"`
	HTMLURL     string  `json:"html_url"`
	Owner       Owner   `json:"owner"`
	ID          int64   `json:"id"`
}

// Owner is the lightweight account reference embedded in a Repository.
type Owner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// NewUser builds a User, falling back to the login when the display
// name is empty.
func NewUser(login, name, avatarURL string) User {
	if name == "" {
		name = login
	}
	return User{
		Username:    login,
		DisplayName: name,
		AvatarURL:   avatarURL,
	}
}

// UserFromOwner synthesizes a User from repository owner data.
func UserFromOwner(o Owner) User {
	return User{
		Username:    o.Login,
		DisplayName: o.Login,
		AvatarURL:   o.AvatarURL,
	}
}
