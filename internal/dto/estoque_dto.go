package dto

import "github.com/shopspring/decimal"

type EstoqueConfigRequest struct {
	ItemID        string          `json:"item_id"        validate:"required"`
	Nome          string          `json:"nome"           validate:"required"`
	Categoria     string          `json:"categoria"`
	Minimo        int             `json:"minimo"         validate:"min=0"`
	Maximo        int             `json:"maximo"         validate:"required,min=1"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario" validate:"min=0"`
	Ativo         *bool           `json:"ativo"`
}

type EstoqueConfigResponse struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"item_id"`
	Nome          string          `json:"nome"`
	Categoria     string          `json:"categoria"`
	Minimo        int             `json:"minimo"`
	Maximo        int             `json:"maximo"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	Ativo         bool            `json:"ativo"`
}

// AvisoEstoqueResponse is one derived stock warning.
// Status: "ok" | "aviso" | "critico" | "sem_estoque"
type AvisoEstoqueResponse struct {
	ItemID        string          `json:"item_id"`
	Nome          string          `json:"nome"`
	Status        string          `json:"status"`
	Atual         int             `json:"atual"`
	Minimo        int             `json:"minimo"`
	Maximo        int             `json:"maximo"`
	Reposicao     int             `json:"reposicao"`
	CustoEstimado decimal.Decimal `json:"custo_estimado"`
	Fingerprint   string          `json:"fingerprint"`
	Visto         bool            `json:"visto"`
}
