// Package user defines the user record and its validation rules. Friend
// links and the popularity score are derived state: friends change only
// through the graph service's link/unlink operations and the score only
// through its score engine.
package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"friendgraph/pkg/apperr"
)

const (
	// MaxUsernameLen is the upper bound on a trimmed username.
	MaxUsernameLen = 50
	// MinAge and MaxAge bound the accepted age range, inclusive.
	MinAge = 1
	MaxAge = 150
)

// User is a node in the social graph
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Age             int       `json:"age"`
	Hobbies         []string  `json:"hobbies"`
	Friends         []string  `json:"friends"`
	CreatedAt       time.Time `json:"createdAt"`
	PopularityScore float64   `json:"popularityScore"`
}

// Update carries a partial attribute update. Nil fields are left unchanged;
// a non-nil Hobbies replaces the whole list.
type Update struct {
	Username *string  `json:"username"`
	Age      *int     `json:"age"`
	Hobbies  []string `json:"hobbies"`
}

// New validates the inputs and returns a fresh user with a generated id,
// no friends, and a zero score.
func New(username string, age int, hobbies []string) (*User, error) {
	username, err := validUsername(username)
	if err != nil {
		return nil, err
	}
	if err := validAge(age); err != nil {
		return nil, err
	}
	hobbies, err = validHobbies(hobbies)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:              uuid.NewString(),
		Username:        username,
		Age:             age,
		Hobbies:         hobbies,
		Friends:         []string{},
		CreatedAt:       time.Now().UTC(),
		PopularityScore: 0,
	}, nil
}

// Apply validates and applies a partial update in place. Omitted fields keep
// their prior values; HobbiesChanged reports whether the hobby list was
// replaced.
func (u *User) Apply(upd Update) (hobbiesChanged bool, err error) {
	if upd.Username != nil {
		name, err := validUsername(*upd.Username)
		if err != nil {
			return false, err
		}
		u.Username = name
	}
	if upd.Age != nil {
		if err := validAge(*upd.Age); err != nil {
			return false, err
		}
		u.Age = *upd.Age
	}
	if upd.Hobbies != nil {
		hobbies, err := validHobbies(upd.Hobbies)
		if err != nil {
			return false, err
		}
		u.Hobbies = hobbies
		hobbiesChanged = true
	}
	return hobbiesChanged, nil
}

// HasFriend reports whether id is in the friend set
func (u *User) HasFriend(id string) bool {
	for _, fid := range u.Friends {
		if fid == id {
			return true
		}
	}
	return false
}

// AddFriend appends id to the friend set if absent
func (u *User) AddFriend(id string) {
	if !u.HasFriend(id) {
		u.Friends = append(u.Friends, id)
	}
}

// RemoveFriend deletes id from the friend set; removing an absent id is a no-op
func (u *User) RemoveFriend(id string) {
	kept := u.Friends[:0]
	for _, fid := range u.Friends {
		if fid != id {
			kept = append(kept, fid)
		}
	}
	u.Friends = kept
}

// Clone returns a deep copy so stored records cannot be mutated through
// returned pointers
func (u *User) Clone() *User {
	c := *u
	c.Hobbies = append([]string(nil), u.Hobbies...)
	c.Friends = append([]string(nil), u.Friends...)
	return &c
}

func validUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", apperr.NewValidation("username", "must not be empty")
	}
	if len(username) > MaxUsernameLen {
		return "", apperr.NewValidation("username", "must not exceed 50 characters")
	}
	return username, nil
}

func validAge(age int) error {
	if age < MinAge || age > MaxAge {
		return apperr.NewValidation("age", "must be between 1 and 150")
	}
	return nil
}

// validHobbies trims each entry and rejects empties. Duplicates are allowed;
// the score formula deliberately counts them with multiplicity.
func validHobbies(hobbies []string) ([]string, error) {
	out := make([]string, 0, len(hobbies))
	for _, h := range hobbies {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, apperr.NewValidation("hobbies", "entries must not be empty")
		}
		out = append(out, h)
	}
	return out, nil
}
