package models

// User is the only persisted resource. Fields outside this set are never stored.
type User struct {
	ID       int64  `json:"id" db:"id" bson:"_id"`
	Name     string `json:"name" db:"name" bson:"name"`
	Lastname string `json:"lastname" db:"lastname" bson:"lastname"`
}

// UserPatch is a request body with every field optional. A nil pointer means
// the key was absent (or null) in the JSON document; unknown keys are dropped
// by the decoder.
type UserPatch struct {
	Name     *string `json:"name"`
	Lastname *string `json:"lastname"`
}

// Complete reports whether both name and lastname are present, which is what
// create and full replace require.
func (p UserPatch) Complete() bool {
	return p.Name != nil && p.Lastname != nil
}

// Empty reports whether neither accepted field is present.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Lastname == nil
}

// User builds the full record for id. Only meaningful when Complete is true.
func (p UserPatch) User(id int64) User {
	u := User{ID: id}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Lastname != nil {
		u.Lastname = *p.Lastname
	}
	return u
}

// Apply merges the present fields into u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Lastname != nil {
		u.Lastname = *p.Lastname
	}
}
