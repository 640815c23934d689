package request

type CreateDoctorRequest struct {
	Name           string   `json:"name" validate:"required,min=2,max=100"`
	Specialization string   `json:"specialization" validate:"required,min=2,max=100"`
	Schedule       []string `json:"schedule,omitempty"`
	Fee            float64  `json:"fee" validate:"required,gt=0"`
	Currency       string   `json:"currency" validate:"omitempty,oneof=INR USD"`
}

type UpdateFeeRequest struct {
	Fee      float64 `json:"fee" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"omitempty,oneof=INR USD"`
}
