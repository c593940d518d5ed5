package models

// Host is a show host. The service owns the authoritative record; consoles
// hold transient copies only.
type Host struct {
	ID    int    `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Phone string `json:"phone" db:"phone"`
	Email string `json:"email" db:"email"`
}
