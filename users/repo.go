package users

type UserRepo interface {
	// Create assigns the next ID and DateJoined when they are unset. ErrUserExists on a taken email.
	Create(user *User) error
	GetByEmail(email string) (*User, error)
	GetByID(id int64) (*User, error)
}
