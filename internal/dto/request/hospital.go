package request

type RegisterHospitalRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Location string `json:"location" validate:"required,min=2,max=200"`
	Contact  string `json:"contact" validate:"required,min=5,max=50"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}
