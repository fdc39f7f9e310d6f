package model

// Doctor is an administrative roster entry. Specialty must reference an
// existing AppointmentOption treatment name.
type Doctor struct {
	ID        string `json:"_id,omitempty" bson:"_id,omitempty"`
	Name      string `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email     string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Specialty string `json:"specialty" bson:"specialty" validate:"required,min=2,max=100"`
}
