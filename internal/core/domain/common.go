package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// AccountingStandard names the rule set governing account formats and statement mapping.
type AccountingStandard string

const (
	StandardSYSCOHADA AccountingStandard = "SYSCOHADA"
	StandardIFRS      AccountingStandard = "IFRS"
)
