package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gerente is a farm manager (or supervisor) with financial accountability.
// Never physically deleted — deactivation preserves ledger referential integrity.
// Funcao: "gerente" | "supervisor"
type Gerente struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome        string          `gorm:"uniqueIndex;not null"`
	Funcao      string          `gorm:"type:varchar(20);not null;default:'gerente'"`
	TaxaSemanal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// LimiarPassivo overrides the global liability alert threshold when set.
	LimiarPassivo *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Ativo         bool             `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
