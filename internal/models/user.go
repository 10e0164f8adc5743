package models

// Role values gate endpoint access.
const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
	RoleDelivery = "DELIVERY"
)

// User represents an authenticated account: customer, delivery person, or admin.
type User struct {
	BaseModel
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         string    `gorm:"default:CUSTOMER" json:"role"`
	VehicleType  string    `json:"vehicle_type,omitempty"`
	VehiclePlate string    `json:"vehicle_plate,omitempty"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	Addresses    []Address `json:"addresses,omitempty"`
	Orders       []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`
}
