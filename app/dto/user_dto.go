package dto

// UserDTO represents a custodian account in API responses
type UserDTO struct {
	ID         uint    `json:"user_id"`
	UUID       string  `json:"uuid"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	FullName   string  `json:"full_name"`
	Role       string  `json:"role"`
	Department *string `json:"department,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// CreateUserRequest represents the payload for creating a custodian account
type CreateUserRequest struct {
	Username        string  `json:"username" validate:"required,min=3,max=100"`
	Password        string  `json:"password" validate:"required,min=8"`
	ConfirmPassword string  `json:"confirm_password" validate:"required,eqfield=Password"`
	Email           string  `json:"email" validate:"required,email"`
	FullName        string  `json:"full_name" validate:"required,min=2,max=255"`
	Role            string  `json:"role" validate:"required,oneof=admin staff faculty technician"`
	Department      *string `json:"department,omitempty" validate:"omitempty,max=255"`
}

// UpdateUserRequest represents the payload for editing a custodian account.
// Password is only changed when provided.
type UpdateUserRequest struct {
	Username   *string `json:"username,omitempty" validate:"omitempty,min=3,max=100"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	FullName   *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=255"`
	Role       *string `json:"role,omitempty" validate:"omitempty,oneof=admin staff faculty technician"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=255"`
}

// UserStats summarizes accounts per role
type UserStats struct {
	TotalUsers      int64 `json:"total_users"`
	AdminCount      int64 `json:"admin_count"`
	StaffCount      int64 `json:"staff_count"`
	FacultyCount    int64 `json:"faculty_count"`
	TechnicianCount int64 `json:"technician_count"`
}

// UserListResponse carries the user listing plus filter helpers
type UserListResponse struct {
	Users       []UserDTO `json:"users"`
	Departments []string  `json:"departments"`
	Stats       UserStats `json:"stats"`
}
