package token

import "context"

// Record is the durable half of a session: the two bearer strings and nothing else.
type Record struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// IsEmpty reports whether neither token is stored.
func (r Record) IsEmpty() bool {
	return r.AccessToken == "" && r.RefreshToken == ""
}

// Repo persists the token record across process restarts.
// Load returns an empty Record, not an error, when nothing has been saved.
type Repo interface {
	Load(ctx context.Context) (Record, error)
	Save(ctx context.Context, record Record) error
	Clear(ctx context.Context) error
}
