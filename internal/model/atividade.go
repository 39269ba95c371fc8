package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AtividadeExterna is a normalized record from the collaborator activity feed.
// Read-only input to the categorizer — never persisted as-is, never mutated.
type AtividadeExterna struct {
	ExternalID string           `json:"external_id"`
	Autor      string           `json:"autor"`
	Tipo       string           `json:"tipo"` // "add" | "remove" | "deposit" | "withdraw" | ...
	Item       string           `json:"item,omitempty"`
	Quantidade int              `json:"quantidade,omitempty"`
	Valor      *decimal.Decimal `json:"valor,omitempty"`
	// Automatica marks deposits originating from an automated system rather
	// than a manual manager action (exclusion policy input).
	Automatica   bool      `json:"automatica,omitempty"`
	Descricao    string    `json:"descricao,omitempty"`
	RegistradoEm time.Time `json:"registrado_em"`
}

// Atividade is the persisted mirror of an ingested feed record. Insert-only;
// its unique external_id is the durable anchor that makes re-syncs idempotent
// even for activities that produce no financial entry.
type Atividade struct {
	ID           int64            `gorm:"primaryKey;autoIncrement"`
	ExternalID   string           `gorm:"uniqueIndex;not null"`
	Autor        string           `gorm:"not null;index"`
	Tipo         string           `gorm:"type:varchar(20);not null"`
	Item         string           `gorm:"type:varchar(80)"`
	Quantidade   int              `gorm:"not null;default:0"`
	Valor        *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Categoria    Categoria        `gorm:"type:varchar(30);not null"`
	Automatica   bool             `gorm:"not null;default:false"`
	Descricao    string
	RegistradoEm time.Time
	CreatedAt    time.Time
}

func (Atividade) TableName() string { return "atividades" }
