// Package businessflow contains the business logic for the asset inventory system.
package businessflow

import (
	"time"

	"github.com/openvarsity/inventory/app/dto"
	"github.com/openvarsity/inventory/models"
)

const RequestIDKey = "X-Request-ID"

// Principal identifies the authenticated account a flow acts on behalf of.
// It is passed explicitly so flows never read session state from globals.
type Principal struct {
	UserID uint            `json:"user_id"`
	Role   models.UserRole `json:"role"`
}

// IsAdmin reports whether the principal carries the admin role
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.UserRoleAdmin
}

// ClientMetadata holds client-related information for audit logging
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToUserDTO converts a user model to UserDTO for API responses
func ToUserDTO(user models.User) dto.UserDTO {
	return dto.UserDTO{
		ID:         user.ID,
		UUID:       user.UUID.String(),
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Role:       user.Role.String(),
		Department: user.Department,
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
	}
}

// ToCategoryDTO converts a category model to CategoryDTO
func ToCategoryDTO(category models.Category) dto.CategoryDTO {
	return dto.CategoryDTO{
		ID:           category.ID,
		CategoryName: category.CategoryName,
		Description:  category.Description,
		CreatedAt:    category.CreatedAt.Format(time.RFC3339),
	}
}

// ToMaintenanceDTO converts a maintenance record to MaintenanceRecordDTO
func ToMaintenanceDTO(record models.MaintenanceRecord) dto.MaintenanceRecordDTO {
	return dto.MaintenanceRecordDTO{
		ID:              record.ID,
		AssetID:         record.AssetID,
		MaintenanceType: record.MaintenanceType,
		MaintenanceDate: record.MaintenanceDate.Format("2006-01-02"),
		Cost:            record.Cost,
		Status:          record.Status.String(),
		AssignedTo:      record.AssignedTo,
		Description:     record.Description,
	}
}
