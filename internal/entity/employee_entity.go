package entity

const (
	EmployeeActive   = "Active"
	EmployeeInactive = "Inactive"
)

type Employee struct {
	Id       string  `bson:"_id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Role     string  `bson:"role" json:"role"`
	Salary   float64 `bson:"salary" json:"salary"`
	Contact  string  `bson:"contact" json:"contact"`
	Doj      string  `bson:"doj" json:"doj"` // date of joining, as entered
	Photo    string  `bson:"photo,omitempty" json:"photo,omitempty"`
	PhotoURL string  `bson:"-" json:"photoUrl,omitempty"`
	Status   string  `bson:"status" json:"status"`
}

type EmployeeIndexFilter struct {
	Search string
}
