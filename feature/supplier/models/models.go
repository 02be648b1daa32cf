package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OnboardingStatus tracks where a supplier is in the onboarding flow.
type OnboardingStatus string

const (
	StatusPending   OnboardingStatus = "pending"
	StatusActive    OnboardingStatus = "active"
	StatusInactive  OnboardingStatus = "inactive"
	StatusProbation OnboardingStatus = "probation"
)

// Valid reports whether the status is one of the known values.
func (s OnboardingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusInactive, StatusProbation:
		return true
	}
	return false
}

// Address is the supplier's mailing address, stored as JSON.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// FTPConfig describes a supplier's SFTP drop. The password is write-only:
// it is persisted but never serialized back out.
type FTPConfig struct {
	Host           string `json:"host"`
	Username       string `json:"username"`
	Password       string `json:"password,omitempty"`
	Port           int    `json:"port"`
	Path           string `json:"path"`
	PrivateKeyPath string `json:"private_key_path,omitempty"`
	Delimiter      string `json:"delimiter,omitempty"`
}

// APIConfig describes a supplier's HTTP feed endpoint.
type APIConfig struct {
	URL      string            `json:"url"`
	AuthType string            `json:"auth_type"`
	Username string            `json:"username,omitempty"`
	Password string            `json:"password,omitempty"`
	Token    string            `json:"token,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
}

// FileUploadConfig describes manual file drops from the supplier.
type FileUploadConfig struct {
	AllowedExtensions []string `json:"allowed_extensions"`
	HasHeader         bool     `json:"has_header"`
	Delimiter         string   `json:"delimiter"`
	SheetName         string   `json:"sheet_name,omitempty"`
}

// DataSourceConfig is the full data-source configuration for a supplier.
// At most one of FTP, API, or FileUpload is exercised per pull.
type DataSourceConfig struct {
	FTP               *FTPConfig        `json:"ftp,omitempty"`
	API               *APIConfig        `json:"api,omitempty"`
	FileUpload        *FileUploadConfig `json:"file_upload,omitempty"`
	MappingTemplateID string            `json:"mapping_template_id,omitempty"`
}

// Supplier is a product supplier under management.
type Supplier struct {
	ID               string            `gorm:"type:char(36);primaryKey" json:"id"`
	Name             string            `gorm:"size:255;not null" json:"name"`
	ContactName      string            `gorm:"size:255" json:"contact_name"`
	ContactEmail     string            `gorm:"size:255;not null" json:"contact_email"`
	ContactPhone     string            `gorm:"size:64" json:"contact_phone"`
	Website          string            `gorm:"size:255" json:"website"`
	Address          *Address          `gorm:"type:json;serializer:json" json:"address,omitempty"`
	OnboardingStatus OnboardingStatus  `gorm:"size:32;not null;default:pending" json:"onboarding_status"`
	DataSources      *DataSourceConfig `gorm:"type:json;serializer:json" json:"data_sources,omitempty"`
	Notes            string            `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// BeforeCreate assigns a UUID and the default status when missing.
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.OnboardingStatus == "" {
		s.OnboardingStatus = StatusPending
	}
	return nil
}

// TestPull is one logged attempt to pull sample data from a supplier.
type TestPull struct {
	ID           uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	SupplierID   string              `gorm:"type:char(36);index;not null" json:"supplier_id"`
	Success      bool                `json:"success"`
	Message      string              `gorm:"type:text" json:"message"`
	SampleData   []map[string]string `gorm:"type:json;serializer:json" json:"sample_data,omitempty"`
	ErrorDetails map[string]string   `gorm:"type:json;serializer:json" json:"error_details,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// TableName keeps the audit table name explicit.
func (TestPull) TableName() string { return "supplier_test_pulls" }

// TestPullResult is the response to a test-pull request.
type TestPullResult struct {
	Success      bool                `json:"success"`
	Message      string              `json:"message"`
	SampleData   []map[string]string `json:"sample_data,omitempty"`
	ErrorDetails map[string]string   `json:"error_details,omitempty"`
	Timestamp    time.Time           `json:"timestamp"`
}

// FieldMapping maps one source feed column to a destination product field.
type FieldMapping struct {
	SourceField      string `json:"source_field"`
	DestinationField string `json:"destination_field"`
}

// MappingTemplate is a named set of field mappings for a supplier feed.
type MappingTemplate struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Mappings []FieldMapping `json:"mappings"`
}

// MappingSuggestion is the best template match for a sample feed.
type MappingSuggestion struct {
	TemplateID    string            `json:"template_id"`
	TemplateName  string            `json:"template_name"`
	FieldMappings map[string]string `json:"field_mappings"`
	ExactMatches  int               `json:"exact_matches"`
	TotalFields   int               `json:"total_fields"`
}

// SchemaValidationResult is the per-field outcome of schema validation.
type SchemaValidationResult struct {
	FieldName    string `json:"field_name"`
	ExpectedType string `json:"expected_type"`
	ActualType   string `json:"actual_type"`
	Valid        bool   `json:"valid"`
	SampleValue  string `json:"sample_value,omitempty"`
	Notes        string `json:"notes,omitempty"`
}
