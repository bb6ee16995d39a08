// models/user.go
package models

import (
	"encoding/json"
)

// User is a user record owned by the identity provider. Only ID and Email
// are interpreted here; the full provider payload is kept so responses
// carry every field the provider returned.
type User struct {
	ID    string
	Email string

	raw json.RawMessage
}

type userFields struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// NewUser builds a record that has no provider payload behind it.
func NewUser(id, email string) User {
	return User{ID: id, Email: email}
}

func (u *User) UnmarshalJSON(data []byte) error {
	var fields userFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	u.ID = fields.ID
	u.Email = fields.Email
	u.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON re-emits the provider payload untouched when there is one.
func (u User) MarshalJSON() ([]byte, error) {
	if len(u.raw) > 0 {
		return u.raw, nil
	}
	return json.Marshal(userFields{ID: u.ID, Email: u.Email})
}

// UserAttributes is the update sent to the provider for a single user.
type UserAttributes struct {
	Password string `json:"password,omitempty"`
}
