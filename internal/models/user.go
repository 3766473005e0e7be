package models

// UserDB represents a user record in the database
type UserDB struct {
	ID             int64  `json:"id" db:"id"`                           // Primary key
	Username       string `json:"username" db:"username"`               // Unique username
	Email          string `json:"email" db:"email"`                     // User email
	HashedPassword string `json:"hashed_password" db:"hashed_password"` // bcrypt digest
}

// User is the public projection of a user.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserFull is the privileged projection used for credential checks.
type UserFull struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	HashedPassword string `json:"hashed_password"`
}

// UserCreated is returned after signup. It never carries the password in any form.
type UserCreated struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public maps the row to its public projection.
func (u UserDB) Public() User {
	return User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// Full maps the row to its privileged projection.
func (u UserDB) Full() UserFull {
	return UserFull{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
	}
}

// UserCreateRequest represents the JSON body for signup
// swagger:model UserCreateRequest
type UserCreateRequest struct {
	// Username
	// required: true
	// example: alice
	Username string `json:"username" validate:"required,min=1,max=50"`

	// Email
	// required: true
	// example: alice@example.com
	Email string `json:"email" validate:"required,email"`

	// Password
	// required: true
	// example: secret
	Password string `json:"password" validate:"required,max=72"`
}

// UserUpdateRequest is a partial update. Nil fields are left untouched.
// swagger:model UserUpdateRequest
type UserUpdateRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=1,max=50"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,max=72"`
}
