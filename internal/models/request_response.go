package models

import "time"

// Request models
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

type CreateAccountRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Role     string `json:"role" binding:"required,oneof=admin user"`
}

type UpdateAccountRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Role  *string `json:"role" binding:"omitempty,oneof=admin user"`
}

type CreateVehicleRequest struct {
	Type        string    `json:"type" binding:"required"`
	Brand       string    `json:"brand" binding:"required"`
	Model       string    `json:"model" binding:"required"`
	Year        int       `json:"year" binding:"required"`
	Plate       string    `json:"plate"`
	Mileage     int       `json:"mileage" binding:"min=0"`
	MileageDate time.Time `json:"mileageDate"`
	Photo       *string   `json:"photo"`
	Renavam     *string   `json:"renavam"`
	Chassis     *string   `json:"chassis"`
	Insurer     *string   `json:"insurer"`
	PolicyUntil *string   `json:"policyUntil"`
}

type UpdateVehicleRequest struct {
	Type        *string `json:"type"`
	Brand       *string `json:"brand"`
	Model       *string `json:"model"`
	Year        *int    `json:"year"`
	Plate       *string `json:"plate"`
	Photo       *string `json:"photo"`
	Renavam     *string `json:"renavam"`
	Chassis     *string `json:"chassis"`
	Insurer     *string `json:"insurer"`
	PolicyUntil *string `json:"policyUntil"`
}

type UpdateMileageRequest struct {
	Mileage int       `json:"mileage" binding:"required,min=0"`
	Date    time.Time `json:"date"`
}

type CreateMaintenanceRequest struct {
	CategoryID     *string    `json:"categoryId"`
	ServiceType    string     `json:"serviceType" binding:"required"`
	Date           time.Time  `json:"date" binding:"required"`
	Mileage        int        `json:"mileage" binding:"min=0"`
	Description    string     `json:"description"`
	Location       string     `json:"location"`
	Cost           float64    `json:"cost" binding:"min=0"`
	NextDueMileage *int       `json:"nextDueMileage"`
	NextDueDate    *time.Time `json:"nextDueDate"`
	Photo          *string    `json:"photo"`
}

type UpdateMaintenanceRequest struct {
	CategoryID     *string    `json:"categoryId"`
	ServiceType    *string    `json:"serviceType"`
	Date           *time.Time `json:"date"`
	Mileage        *int       `json:"mileage"`
	Description    *string    `json:"description"`
	Location       *string    `json:"location"`
	Cost           *float64   `json:"cost"`
	NextDueMileage *int       `json:"nextDueMileage"`
	NextDueDate    *time.Time `json:"nextDueDate"`
	Photo          *string    `json:"photo"`
}

type CreateTaxRequest struct {
	Year           int       `json:"year" binding:"required"`
	Kind           string    `json:"kind" binding:"required,oneof=ipva licensing both"`
	IPVAValue      float64   `json:"ipvaValue" binding:"min=0"`
	LicensingValue float64   `json:"licensingValue" binding:"min=0"`
	DueDate        time.Time `json:"dueDate" binding:"required"`
	Installments   int       `json:"installments" binding:"min=0"`
	Notes          string    `json:"notes"`
}

type UpdateTaxRequest struct {
	Year             *int       `json:"year"`
	Kind             *string    `json:"kind" binding:"omitempty,oneof=ipva licensing both"`
	IPVAValue        *float64   `json:"ipvaValue"`
	LicensingValue   *float64   `json:"licensingValue"`
	DueDate          *time.Time `json:"dueDate"`
	PaymentMethod    *string    `json:"paymentMethod"`
	Installments     *int       `json:"installments"`
	PaidInstallments *int       `json:"paidInstallments"`
	Documents        *string    `json:"documents"`
	Notes            *string    `json:"notes"`
}

type SetTaxStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid overdue"`
}

type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

type UpdateSettingsRequest struct {
	DarkMode             *bool `json:"darkMode"`
	NotificationsEnabled *bool `json:"notificationsEnabled"`
	MaintenanceAlertKm   *int  `json:"maintenanceAlertKm" binding:"omitempty,min=1"`
	TaxAlertDays         *int  `json:"taxAlertDays" binding:"omitempty,min=1"`
}

type MarkReadRequest struct {
	ID string `json:"id" binding:"required"`
}

type MarkAllReadRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// Response models
type AuthResponse struct {
	Status             string `json:"status"`
	AccountID          string `json:"accountId,omitempty"`
	Username           string `json:"username,omitempty"`
	Name               string `json:"name,omitempty"`
	Role               string `json:"role,omitempty"`
	MustChangePassword bool   `json:"mustChangePassword"`
	Token              string `json:"token,omitempty"`
	ExpiresIn          int    `json:"expiresIn,omitempty"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Alert is one entry in the in-app alert feed. ID mirrors the id of
// the maintenance or tax record that produced it.
type Alert struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"`  // "maintenance" or "tax"
	State        string `json:"state"` // "upcoming" or "overdue"
	VehicleID    string `json:"vehicleId"`
	Title        string `json:"title"`
	DueMileage   *int   `json:"dueMileage,omitempty"`
	DaysUntilDue *int   `json:"daysUntilDue,omitempty"`
	Read         bool   `json:"read"`
}

type AlertsResponse struct {
	Status string  `json:"status"`
	Alerts []Alert `json:"alerts"`
}

// CategorySpend is a per-category aggregate for the dashboard.
type CategorySpend struct {
	CategoryID string  `db:"category_id" json:"categoryId"`
	Name       string  `db:"name" json:"name"`
	Color      string  `db:"color" json:"color"`
	Count      int     `db:"count" json:"count"`
	Amount     float64 `db:"amount" json:"amount"`
}

type DashboardResponse struct {
	Status              string          `json:"status"`
	VehicleID           string          `json:"vehicleId,omitempty"`
	MaintenanceCount    int             `json:"maintenanceCount"`
	TotalSpend          float64         `json:"totalSpend"`
	SpendByCategory     []CategorySpend `json:"spendByCategory"`
	UpcomingMaintenance int             `json:"upcomingMaintenance"`
	OverdueMaintenance  int             `json:"overdueMaintenance"`
	UpcomingTaxes       int             `json:"upcomingTaxes"`
	OverdueTaxes        int             `json:"overdueTaxes"`
	PendingTaxTotal     float64         `json:"pendingTaxTotal"`
}

// BackupSchemaVersion is the current backup document schema.
const BackupSchemaVersion = 1

// BackupDocument is the single JSON document produced by export and
// accepted by import. Ids and timestamps are preserved verbatim.
type BackupDocument struct {
	SchemaVersion      int                 `json:"schemaVersion"`
	ExportedAt         time.Time           `json:"exportedAt"`
	Vehicles           []Vehicle           `json:"vehicles"`
	MaintenanceRecords []MaintenanceRecord `json:"maintenanceRecords"`
	TaxRecords         []TaxRecord         `json:"taxRecords"`
	Categories         []Category          `json:"categories"`
	Settings           *Settings           `json:"settings,omitempty"`
	ReadNotifications  []ReadNotification  `json:"readNotifications"`
}

type ExportResponse struct {
	Status   string         `json:"status"`
	Filename string         `json:"filename"`
	Backup   BackupDocument `json:"backup"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
