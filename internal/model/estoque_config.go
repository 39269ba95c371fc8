package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstoqueConfig holds the min/max bounds and unit price for one inventory item.
// The current quantity itself lives in the inventory collaborator; status is
// derived live against these bounds.
type EstoqueConfig struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID        string          `gorm:"uniqueIndex;not null"`
	Nome          string          `gorm:"not null"`
	Categoria     Categoria       `gorm:"type:varchar(30);not null;default:'outros'"`
	Minimo        int             `gorm:"not null"`
	Maximo        int             `gorm:"not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Ativo         bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (EstoqueConfig) TableName() string { return "estoque_configs" }
