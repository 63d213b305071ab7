package store

import "time"

// documentRow is the persisted form of a document.
type documentRow struct {
	Path       string `gorm:"primaryKey"`
	Collection string `gorm:"index"`
	Body       []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (documentRow) TableName() string { return "documents" }

// auditRow is one entry in the privileged-operation audit trail.
type auditRow struct {
	ID        string `gorm:"primaryKey"`
	Actor     string `gorm:"index"`
	Operation string
	Path      string
	CreatedAt time.Time
}

func (auditRow) TableName() string { return "audit_entries" }

// Document is a stored document with its raw data.
type Document struct {
	Path       string         `json:"path"`
	Data       map[string]any `json:"data"`
	CreateTime time.Time      `json:"createTime"`
	UpdateTime time.Time      `json:"updateTime"`
}

// AuditEntry records one privileged operation.
type AuditEntry struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Operation string    `json:"operation"`
	Path      string    `json:"path"`
	Time      time.Time `json:"time"`
}

// Filter is an equality constraint applied to a list operation.
type Filter struct {
	Field string
	Value any
}
