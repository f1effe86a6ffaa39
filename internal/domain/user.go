package domain

type User struct {
	ID     string `db:"id"`
	Email  string `db:"email"`
	Hash   string `db:"password_hash"`
	Active bool   `db:"active"`
}
