package models

import (
	"encoding/json"
	"reflect"
	"sort"
)

// AuditAction represents the type of operation recorded by the backend
type AuditAction string

const (
	AuditActionCreate   AuditAction = "create"
	AuditActionUpdate   AuditAction = "update"
	AuditActionDelete   AuditAction = "delete"
	AuditActionView     AuditAction = "view"
	AuditActionDownload AuditAction = "download"
	AuditActionLogin    AuditAction = "login"
	AuditActionLogout   AuditAction = "logout"
)

// AuditLogEntry is an immutable backend audit record
type AuditLogEntry struct {
	ID             FlexString      `json:"id"`
	UserID         FlexString      `json:"user_id,omitempty"`
	UserName       FlexString      `json:"user_name,omitempty"`
	UserEmail      FlexString      `json:"user_email,omitempty"`
	OrganizationID FlexString      `json:"organization_id,omitempty"`
	Action         AuditAction     `json:"action"`
	ResourceType   FlexString      `json:"resource_type,omitempty"`
	ResourceID     FlexString      `json:"resource_id,omitempty"`
	CaseNumber     FlexString      `json:"case_number,omitempty"`
	Description    FlexString      `json:"description,omitempty"`
	OldValues      json.RawMessage `json:"old_values,omitempty"`
	NewValues      json.RawMessage `json:"new_values,omitempty"`
	IPAddress      FlexString      `json:"ip_address,omitempty"`
	UserAgent      FlexString      `json:"user_agent,omitempty"`
	CreatedAt      FlexString      `json:"created_at"`
}

// AuditChange represents a single field change
type AuditChange struct {
	Field string
	Old   interface{}
	New   interface{}
}

// Changes compares OldValues and NewValues and returns the differing fields sorted by name.
// Values may arrive as JSON objects or as JSON strings holding an encoded object.
func (a *AuditLogEntry) Changes() []AuditChange {
	var changes []AuditChange
	oldMap := decodeAuditValues(a.OldValues)
	newMap := decodeAuditValues(a.NewValues)

	keys := make(map[string]struct{})
	for k := range oldMap {
		keys[k] = struct{}{}
	}
	for k := range newMap {
		keys[k] = struct{}{}
	}

	for k := range keys {
		o := oldMap[k]
		n := newMap[k]
		if !reflect.DeepEqual(o, n) {
			changes = append(changes, AuditChange{Field: k, Old: o, New: n})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	return changes
}

func decodeAuditValues(raw json.RawMessage) map[string]interface{} {
	values := make(map[string]interface{})
	if len(raw) == 0 {
		return values
	}
	if err := json.Unmarshal(raw, &values); err == nil {
		return values
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil && encoded != "" {
		_ = json.Unmarshal([]byte(encoded), &values)
	}
	return values
}
