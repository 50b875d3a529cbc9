package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jrsteele09/go-ukci-client/tenants"
	"golang.org/x/crypto/bcrypt"
)

// RoleType represents a user's role within their tenant
type RoleType string

const (
	RoleAdmin    RoleType = "admin"     // Manages users, billing and settings for the tenant
	RoleManager  RoleType = "manager"   // Owns pipelines and campaigns
	RoleSalesRep RoleType = "sales_rep" // Day-to-day CRM user
	RoleViewer   RoleType = "viewer"    // Read-only dashboards
)

// ID accepts both JSON numbers and strings, since backends disagree on which
// one a user id is. It is always re-encoded as a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

type User struct {
	ID           ID        `json:"id"`                   // Unique identifier for the user
	Email        string    `json:"email,omitempty"`      // User's email address
	PasswordHash string    `json:"-"`                    // Hashed password, server side only - never serialize
	FirstName    string    `json:"first_name,omitempty"` // First name of the user
	LastName     string    `json:"last_name,omitempty"`  // Last name of the user
	Company      string    `json:"company,omitempty"`    // Employer, as entered at registration
	Role         RoleType  `json:"role,omitempty"`       // Role within the tenant
	TenantID     string    `json:"tenant_id,omitempty"`  // Tenant the user belongs to
	DateJoined   time.Time `json:"date_joined,omitempty"`
	LastLogin    time.Time `json:"last_login,omitempty"`

	// Tenant is only populated once the current-user refresh has merged it in.
	Tenant *tenants.Tenant `json:"tenant,omitempty"`
}

// IsZero reports whether u carries no identity at all.
func (u *User) IsZero() bool {
	return u == nil || (u.ID == "" && u.Email == "")
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// WithTenant returns a copy of u with tenant nested in it.
func (u User) WithTenant(tenant *tenants.Tenant) User {
	u.Tenant = tenant
	if tenant != nil && u.TenantID == "" {
		u.TenantID = tenant.ID
	}
	return u
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashed), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
