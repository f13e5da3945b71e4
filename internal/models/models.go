package models

import (
	"time"
)

// Account roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Tax record kinds
const (
	TaxKindIPVA      = "ipva"
	TaxKindLicensing = "licensing"
	TaxKindBoth      = "both"
)

// Tax record statuses
const (
	TaxStatusPending = "pending"
	TaxStatusPaid    = "paid"
	TaxStatusOverdue = "overdue"
)

// Account represents a registered account in the system
type Account struct {
	ID                 string    `db:"id" json:"id"`
	Username           string    `db:"username" json:"username"`
	Password           string    `db:"password" json:"-"` // bcrypt hash, not returned in JSON
	Name               string    `db:"name" json:"name"`
	Email              string    `db:"email" json:"email"`
	Role               string    `db:"role" json:"role"` // "admin" or "user"
	MustChangePassword bool      `db:"must_change_password" json:"mustChangePassword"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// Vehicle represents a vehicle owned by an account
type Vehicle struct {
	ID          string    `db:"id" json:"id"`
	AccountID   string    `db:"account_id" json:"accountId"`
	Type        string    `db:"type" json:"type"` // car, motorcycle, truck, ...
	Brand       string    `db:"brand" json:"brand"`
	Model       string    `db:"model" json:"model"`
	Year        int       `db:"year" json:"year"`
	Plate       string    `db:"plate" json:"plate"`
	Mileage     int       `db:"mileage" json:"mileage"`
	MileageDate time.Time `db:"mileage_date" json:"mileageDate"`
	Photo       *string   `db:"photo" json:"photo,omitempty"`
	Renavam     *string   `db:"renavam" json:"renavam,omitempty"`
	Chassis     *string   `db:"chassis" json:"chassis,omitempty"`
	Insurer     *string   `db:"insurer" json:"insurer,omitempty"`
	PolicyUntil *string   `db:"policy_until" json:"policyUntil,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// MaintenanceRecord represents a maintenance event performed on a vehicle
type MaintenanceRecord struct {
	ID             string     `db:"id" json:"id"`
	VehicleID      string     `db:"vehicle_id" json:"vehicleId"`
	AccountID      string     `db:"account_id" json:"accountId"`
	CategoryID     *string    `db:"category_id" json:"categoryId,omitempty"`
	ServiceType    string     `db:"service_type" json:"serviceType"`
	Date           time.Time  `db:"date" json:"date"`
	Mileage        int        `db:"mileage" json:"mileage"`
	Description    string     `db:"description" json:"description"`
	Location       string     `db:"location" json:"location"`
	Cost           float64    `db:"cost" json:"cost"`
	NextDueMileage *int       `db:"next_due_mileage" json:"nextDueMileage,omitempty"`
	NextDueDate    *time.Time `db:"next_due_date" json:"nextDueDate,omitempty"`
	Photo          *string    `db:"photo" json:"photo,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}

// TaxRecord represents a yearly IPVA/licensing payment for a vehicle.
// TotalValue is always the sum of IPVAValue and LicensingValue; the
// data layer recomputes it on every create and update.
type TaxRecord struct {
	ID               string     `db:"id" json:"id"`
	VehicleID        string     `db:"vehicle_id" json:"vehicleId"`
	AccountID        string     `db:"account_id" json:"accountId"`
	Year             int        `db:"year" json:"year"`
	Kind             string     `db:"kind" json:"kind"` // "ipva", "licensing" or "both"
	IPVAValue        float64    `db:"ipva_value" json:"ipvaValue"`
	LicensingValue   float64    `db:"licensing_value" json:"licensingValue"`
	TotalValue       float64    `db:"total_value" json:"totalValue"`
	DueDate          time.Time  `db:"due_date" json:"dueDate"`
	Status           string     `db:"status" json:"status"` // "pending", "paid" or "overdue"
	PaymentDate      *time.Time `db:"payment_date" json:"paymentDate,omitempty"`
	PaymentMethod    *string    `db:"payment_method" json:"paymentMethod,omitempty"`
	Installments     int        `db:"installments" json:"installments"`
	PaidInstallments int        `db:"paid_installments" json:"paidInstallments"`
	Documents        *string    `db:"documents" json:"documents,omitempty"`
	Notes            string     `db:"notes" json:"notes"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}

// Category represents a user-defined maintenance category
type Category struct {
	ID        string    `db:"id" json:"id"`
	AccountID string    `db:"account_id" json:"accountId"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	Icon      string    `db:"icon" json:"icon"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Settings is the per-account preferences row. It also carries the
// current-vehicle pointer for the account.
type Settings struct {
	AccountID            string    `db:"account_id" json:"accountId"`
	DarkMode             bool      `db:"dark_mode" json:"darkMode"`
	NotificationsEnabled bool      `db:"notifications_enabled" json:"notificationsEnabled"`
	MaintenanceAlertKm   int       `db:"maintenance_alert_km" json:"maintenanceAlertKm"`
	TaxAlertDays         int       `db:"tax_alert_days" json:"taxAlertDays"`
	CurrentVehicleID     *string   `db:"current_vehicle_id" json:"currentVehicleId,omitempty"`
	UpdatedAt            time.Time `db:"updated_at" json:"updatedAt"`
}

// ReadNotification marks an alert (keyed by the maintenance or tax
// record id that produced it) as acknowledged by the account.
type ReadNotification struct {
	ID        string    `db:"id" json:"id"`
	AccountID string    `db:"account_id" json:"accountId"`
	ReadAt    time.Time `db:"read_at" json:"readAt"`
}
