package model

const (
	RoleAdmin   = "admin"
	RolePatient = "patient"
)

// User is the minimal record needed for authorization. Role is a two-value
// enum defaulting to patient; admin is only set by the promotion operation.
type User struct {
	ID    string `json:"_id,omitempty" bson:"_id,omitempty"`
	Name  string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email string `json:"email" bson:"email" validate:"required,email"`
	Role  string `json:"role,omitempty" bson:"role,omitempty" validate:"omitempty,oneof=admin patient"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
