package users

type UserRepo interface {
	Upsert(user *User) error
	GetByEmail(email string) (*User, error)
	GetByID(id ID) (*User, error)
	SetLastLogin(email string) error
}
