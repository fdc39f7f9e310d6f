package model

// AppointmentOption is a treatment offering with its catalog of bookable
// slots and price. Options are seeded administratively and read-only here;
// remaining-slot views are derived per request, never written back.
type AppointmentOption struct {
	ID    string   `json:"_id,omitempty" bson:"_id,omitempty"`
	Name  string   `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Price float64  `json:"price" bson:"price" validate:"required,gt=0"`
	Slots []string `json:"slots" bson:"slots" validate:"required,min=1,dive,required"`
}
