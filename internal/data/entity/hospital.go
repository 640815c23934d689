package entity

// Hospital is the single registered hospital profile. Re-registering
// replaces the stored row.
type Hospital struct {
	Base
	Name         string `db:"name"`
	Location     string `db:"location"`
	Contact      string `db:"contact"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
}
