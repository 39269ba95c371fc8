package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RetiradaRequest struct {
	GerenteID string          `json:"gerente_id" validate:"required,uuid"`
	Valor     decimal.Decimal `json:"valor"      validate:"required,gt=0"`
	Motivo    string          `json:"motivo"     validate:"required,min=3"`
}

type DepositoRequest struct {
	GerenteID string          `json:"gerente_id" validate:"required,uuid"`
	Valor     decimal.Decimal `json:"valor"      validate:"required,gt=0"`
	Motivo    string          `json:"motivo"     validate:"required,min=3"`
	Categoria string          `json:"categoria"`
	// Automatico flags deposits originating from an automated system; the
	// exclusion policy records them as deposito_excluido.
	Automatico bool `json:"automatico"`
}

type PagamentoRequest struct {
	GerenteID     string          `json:"gerente_id"     validate:"required,uuid"`
	TrabalhadorID string          `json:"trabalhador_id" validate:"required"`
	Valor         decimal.Decimal `json:"valor"          validate:"required,gt=0"`
	RetiradaID    *string         `json:"retirada_id"    validate:"omitempty,uuid"`
	AtividadeID   *string         `json:"atividade_id"`
	Categoria     string          `json:"categoria"`
}

type EstornoRequest struct {
	GerenteID   string `json:"gerente_id"   validate:"required,uuid"`
	Categoria   string `json:"categoria"    validate:"required"`
	AtividadeID string `json:"atividade_id" validate:"required"`
}

type EstornoTodosRequest struct {
	GerenteID string `json:"gerente_id" validate:"required,uuid"`
	Categoria string `json:"categoria"  validate:"required"`
}

type ResetPassivoRequest struct {
	Baseline decimal.Decimal `json:"baseline" validate:"min=0"`
	Motivo   string          `json:"motivo"   validate:"required,min=5"`
}

// MarcarVistoRequest acknowledges one derived alert by its fingerprint
// (liability and stock alerts share the flag store).
type MarcarVistoRequest struct {
	Fingerprint string `json:"fingerprint" validate:"required"`
}

type RelatorioPDFRequest struct {
	Dias  int    `json:"dias"  validate:"required,min=1,max=90"`
	Email string `json:"email" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LancamentoResponse struct {
	ID            string          `json:"id"`
	GerenteID     string          `json:"gerente_id"`
	Tipo          string          `json:"tipo"`
	Valor         decimal.Decimal `json:"valor"`
	Categoria     string          `json:"categoria"`
	Motivo        string          `json:"motivo"`
	TrabalhadorID *string         `json:"trabalhador_id,omitempty"`
	ExternalID    *string         `json:"external_id,omitempty"`
	RetiradaID    *string         `json:"retirada_id,omitempty"`
	AtividadeID   *string         `json:"atividade_id,omitempty"`
	EstornoDeID   *string         `json:"estorno_de_id,omitempty"`
	CriadoEm      string          `json:"criado_em"`
}

type DepositoResponse struct {
	Lancamento LancamentoResponse `json:"lancamento"`
	Excluido   bool               `json:"excluido"`
}

// PassivoResponse is a point-in-time liability snapshot. Callers must not
// cache it across mutations.
type PassivoResponse struct {
	GerenteID   string          `json:"gerente_id"`
	Total       decimal.Decimal `json:"total"`
	Retiradas   decimal.Decimal `json:"retiradas"`
	Pagamentos  decimal.Decimal `json:"pagamentos"`
	Estornos    decimal.Decimal `json:"estornos"`
	Ajustes     decimal.Decimal `json:"ajustes"`
	ComputadoEm string          `json:"computado_em"`
}

type FluxoResponse struct {
	GerenteID          string                     `json:"gerente_id"`
	Dias               int                        `json:"dias"`
	Lancamentos        []LancamentoResponse       `json:"lancamentos"`
	TotaisPorCategoria map[string]decimal.Decimal `json:"totais_por_categoria"`
	TotalRetiradas     decimal.Decimal            `json:"total_retiradas"`
	TotalDepositos     decimal.Decimal            `json:"total_depositos"`
	TotalPagamentos    decimal.Decimal            `json:"total_pagamentos"`
	Passivo            decimal.Decimal            `json:"passivo"`
}

type EstornoTodosResponse struct {
	Estornados int             `json:"estornados"`
	Valor      decimal.Decimal `json:"valor"`
}

type AlertaPassivoResponse struct {
	GerenteID   string          `json:"gerente_id"`
	Nome        string          `json:"nome"`
	Passivo     decimal.Decimal `json:"passivo"`
	Limiar      decimal.Decimal `json:"limiar"`
	Fingerprint string          `json:"fingerprint"`
	Visto       bool            `json:"visto"`
}
