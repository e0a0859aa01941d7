package domain

// User is a customer profile as issued by the backend's OTP/password login.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`

	// IsActive is surfaced on the admin user listing; deactivated accounts
	// cannot log in.
	IsActive bool `json:"is_active"`
}

// Admin is a back-office profile from the admin login flow. The admin and
// customer realms are fully independent; holding one implies nothing about
// the other.
type Admin struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
