package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types for the gateway's audit trail
const (
	AuditEventTypeLogin       = "login"
	AuditEventTypeUserUpdate  = "user_update"
	AuditEventTypeUserDelete  = "user_delete"
	AuditEventTypeBulkUpdate  = "bulk_update"
	AuditEventTypePassword    = "password_change"
	AuditEventTypePlanOp      = "plan_operation"
	AuditEventTypeBannerOp    = "banner_operation"
	AuditEventTypeProviderOp  = "provider_operation"
	AuditEventTypeMaintenance = "maintenance_run"
)

// Resource types
const (
	AuditResourceTypeUser     = "user"
	AuditResourceTypePlan     = "membership_plan"
	AuditResourceTypeBanner   = "banner"
	AuditResourceTypeProvider = "provider_config"
	AuditResourceTypeJob      = "maintenance_job"
)

// Actions
const (
	AuditActionCreate  = "create"
	AuditActionUpdate  = "update"
	AuditActionDelete  = "delete"
	AuditActionTrigger = "trigger"
)

// AuditLog records one administrative action the gateway performed (or
// attempted) against the backend on behalf of an operator.
type AuditLog struct {
	ID            uuid.UUID     `db:"id"`
	EventType     string        `db:"event_type"`
	Operator      string        `db:"operator"`
	ResourceType  *string       `db:"resource_type"`
	ResourceID    *string       `db:"resource_id"`
	Action        string        `db:"action"`
	Success       bool          `db:"success"`
	FailureReason *string       `db:"failure_reason"`
	IPAddress     *string       `db:"ip_address"`
	UserAgent     *string       `db:"user_agent"`
	Metadata      AuditMetadata `db:"metadata"`
	CreatedAt     time.Time     `db:"created_at"`
}

// AuditMetadata holds additional context for audit events (field deltas,
// selected user ids, counts).
type AuditMetadata map[string]interface{}

// Scan implements sql.Scanner for JSONB
func (am *AuditMetadata) Scan(value interface{}) error {
	if value == nil {
		*am = make(AuditMetadata)
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return ErrBadRequest
	}

	var m map[string]interface{}
	if err := json.Unmarshal(bytes, &m); err != nil {
		return err
	}

	*am = m
	return nil
}

// Value implements driver.Valuer for JSONB
func (am AuditMetadata) Value() (driver.Value, error) {
	if am == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(am)
}
