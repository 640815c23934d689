package entity

type Doctor struct {
	Base
	Name           string   `db:"name"`
	Specialization string   `db:"specialization"`
	Schedule       []string `db:"schedule"`
	Fee            float64  `db:"fee"`
	Currency       string   `db:"currency"`
	Active         bool     `db:"active"`
}
