package dto

import "github.com/shopspring/decimal"

type CriarGerenteRequest struct {
	Nome          string           `json:"nome"           validate:"required,min=2"`
	Funcao        string           `json:"funcao"         validate:"required,oneof=gerente supervisor"`
	TaxaSemanal   decimal.Decimal  `json:"taxa_semanal"   validate:"min=0"`
	LimiarPassivo *decimal.Decimal `json:"limiar_passivo"`
}

type AtualizarGerenteRequest struct {
	Funcao        string           `json:"funcao"         validate:"omitempty,oneof=gerente supervisor"`
	TaxaSemanal   *decimal.Decimal `json:"taxa_semanal"`
	LimiarPassivo *decimal.Decimal `json:"limiar_passivo"`
}

type GerenteResponse struct {
	ID            string           `json:"id"`
	Nome          string           `json:"nome"`
	Funcao        string           `json:"funcao"`
	TaxaSemanal   decimal.Decimal  `json:"taxa_semanal"`
	LimiarPassivo *decimal.Decimal `json:"limiar_passivo,omitempty"`
	Ativo         bool             `json:"ativo"`
}
