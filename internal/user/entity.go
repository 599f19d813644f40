// AngelaMos | 2026
// entity.go

package user

// User is a registered account. Password holds whatever the configured
// password scheme stores: the raw value or an encoded hash.
type User struct {
	ID       int64  `db:"id"`
	Email    string `db:"email"`
	Password string `db:"password"`
}
