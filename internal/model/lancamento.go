package model

import (
	"time"

	"github.com/Jizar07/cabradapeste-sub002/internal/apierror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TipoLancamento discriminates the ledger entry union. Required fields are
// checked once, at construction, instead of ad hoc at every read site.
type TipoLancamento string

const (
	// TipoRetirada: money withdrawn by a gerente (raises liability).
	TipoRetirada TipoLancamento = "retirada"
	// TipoDeposito: money deposited by a gerente. Deposits fund petty cash but
	// do not discharge liability unless explicitly linked.
	TipoDeposito TipoLancamento = "deposito"
	// TipoDepositoExcluido: automated-system deposit, recorded for audit only.
	TipoDepositoExcluido TipoLancamento = "deposito_excluido"
	// TipoPagamento: payout to a worker (discharges liability).
	TipoPagamento TipoLancamento = "pagamento_trabalhador"
	// TipoEstorno: reversal of a prior pagamento. The reversed entry is never
	// deleted — both facts remain and the fold nets them out.
	TipoEstorno TipoLancamento = "estorno_pagamento"
	// TipoAjusteCredito / TipoAjusteDebito: operator-invoked reset corrections.
	TipoAjusteCredito TipoLancamento = "ajuste_credito"
	TipoAjusteDebito  TipoLancamento = "ajuste_debito"
)

// Lancamento is the atomic financial fact of the ledger. Immutable once
// persisted: reversals and corrections are new entries, never updates.
type Lancamento struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GerenteID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo      TipoLancamento  `gorm:"type:varchar(30);not null"`
	Valor     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Categoria Categoria       `gorm:"type:varchar(30);not null;index"`
	Motivo    string          `gorm:"not null"`
	// TrabalhadorID identifies the paid worker on pagamento entries.
	TrabalhadorID *string `gorm:"type:varchar(64)"`
	// ExternalID links a synced entry to its feed activity — the dedupe key.
	ExternalID *string `gorm:"uniqueIndex"`
	// RetiradaID attributes a pagamento to a specific withdrawal; nil means
	// the payment debits the gerente's pooled liability.
	RetiradaID *uuid.UUID `gorm:"type:uuid"`
	// AtividadeID links a pagamento to the paid feed activity (estorno target).
	AtividadeID *string `gorm:"type:varchar(64);index"`
	// EstornoDeID references the pagamento reversed by this estorno.
	EstornoDeID *uuid.UUID `gorm:"type:uuid;index"`
	CriadoEm    time.Time  `gorm:"autoCreateTime;index"`

	Gerente *Gerente `gorm:"foreignKey:GerenteID"`
}

func (Lancamento) TableName() string { return "lancamentos" }

// Efeito returns the signed effect of this entry on the gerente's outstanding
// liability. Deposits (excluded or not) are neutral by design.
func (l *Lancamento) Efeito() decimal.Decimal {
	switch l.Tipo {
	case TipoRetirada, TipoEstorno, TipoAjusteDebito:
		return l.Valor
	case TipoPagamento, TipoAjusteCredito:
		return l.Valor.Neg()
	default:
		return decimal.Zero
	}
}

// ── Constructors ─────────────────────────────────────────────────────────────

// NovaRetirada builds a withdrawal entry. Valor must be positive and the
// reason is mandatory.
func NovaRetirada(gerenteID uuid.UUID, valor decimal.Decimal, motivo string) (*Lancamento, error) {
	if valor.LessThanOrEqual(decimal.Zero) {
		return nil, apierror.Validacao("retirada exige valor positivo")
	}
	if motivo == "" {
		return nil, apierror.Validacao("retirada exige motivo")
	}
	return &Lancamento{
		GerenteID: gerenteID,
		Tipo:      TipoRetirada,
		Valor:     valor,
		Categoria: CategoriaFinancial,
		Motivo:    motivo,
	}, nil
}

// NovoDeposito builds a deposit entry. When excluido is true (the feed flags
// the deposit as automated) the entry is recorded but stays out of liability math.
func NovoDeposito(gerenteID uuid.UUID, valor decimal.Decimal, motivo string, categoria Categoria, excluido bool) (*Lancamento, error) {
	if valor.LessThanOrEqual(decimal.Zero) {
		return nil, apierror.Validacao("deposito exige valor positivo")
	}
	if categoria == "" {
		categoria = CategoriaFinancial
	}
	tipo := TipoDeposito
	if excluido {
		tipo = TipoDepositoExcluido
		categoria = CategoriaExcluded
	}
	return &Lancamento{
		GerenteID: gerenteID,
		Tipo:      tipo,
		Valor:     valor,
		Categoria: categoria,
		Motivo:    motivo,
	}, nil
}

// NovoPagamento builds a worker payment. retiradaID and atividadeID are
// optional: a nil retiradaID debits the pooled liability.
func NovoPagamento(gerenteID uuid.UUID, trabalhadorID string, valor decimal.Decimal, categoria Categoria, retiradaID *uuid.UUID, atividadeID *string) (*Lancamento, error) {
	if trabalhadorID == "" {
		return nil, apierror.Validacao("pagamento exige trabalhador_id")
	}
	if valor.LessThanOrEqual(decimal.Zero) {
		return nil, apierror.Validacao("pagamento exige valor positivo")
	}
	if categoria == "" {
		categoria = CategoriaWorkerPayment
	}
	return &Lancamento{
		GerenteID:     gerenteID,
		Tipo:          TipoPagamento,
		Valor:         valor,
		Categoria:     categoria,
		Motivo:        "pagamento a trabalhador " + trabalhadorID,
		TrabalhadorID: &trabalhadorID,
		RetiradaID:    retiradaID,
		AtividadeID:   atividadeID,
	}, nil
}

// NovoEstorno builds the reversing entry for a pagamento. The original entry
// is untouched; the estorno restores the discharged liability.
func NovoEstorno(original *Lancamento, motivo string) (*Lancamento, error) {
	if original == nil || original.Tipo != TipoPagamento {
		return nil, apierror.Validacao("estorno exige um pagamento original")
	}
	id := original.ID
	return &Lancamento{
		GerenteID:     original.GerenteID,
		Tipo:          TipoEstorno,
		Valor:         original.Valor,
		Categoria:     original.Categoria,
		Motivo:        motivo,
		TrabalhadorID: original.TrabalhadorID,
		AtividadeID:   original.AtividadeID,
		EstornoDeID:   &id,
	}, nil
}

// NovoAjuste builds the corrective entry a liability reset appends. delta is
// the signed amount that must be added to the current liability to reach the
// requested baseline. A zero delta is a caller error.
func NovoAjuste(gerenteID uuid.UUID, delta decimal.Decimal, motivo string) (*Lancamento, error) {
	if motivo == "" {
		return nil, apierror.Validacao("ajuste exige motivo para auditoria")
	}
	if delta.IsZero() {
		return nil, apierror.Validacao("ajuste exige delta diferente de zero")
	}
	tipo := TipoAjusteDebito
	if delta.IsNegative() {
		tipo = TipoAjusteCredito
	}
	return &Lancamento{
		GerenteID: gerenteID,
		Tipo:      tipo,
		Valor:     delta.Abs(),
		Categoria: CategoriaFinancial,
		Motivo:    motivo,
	}, nil
}
