package entity

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Patient is a per-visit history record. The row is created inside the
// booking's atomic unit, so a failed payment leaves no patient behind.
type Patient struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Age       int       `db:"age"`
	Gender    Gender    `db:"gender"`
	Reason    string    `db:"reason"`
	Location  *string   `db:"location"`
	DoctorID  uuid.UUID `db:"doctor_id"`
	VisitedAt time.Time `db:"visited_at"`
}
