package types

// User is a registered marketplace account. Users are created once at
// registration and never updated or deleted.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	ContactInfo string `json:"contact_info"`
}
