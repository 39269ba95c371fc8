package service

import "github.com/shopspring/decimal"

// Stock status bands, from worst to best. Monotonic in the current quantity:
// lowering stock never improves the status.
const (
	StatusSemEstoque = "sem_estoque"
	StatusCritico    = "critico"
	StatusAviso      = "aviso"
	StatusOK         = "ok"
)

// precoEstimadoPadrao stands in when a config carries no unit price; a missing
// price must degrade the cost estimate, never fail the warning.
var precoEstimadoPadrao = decimal.NewFromInt(1)

// StatusEstoque evaluates one item's stock level against its configured
// minimum. critico triggers below a quarter of the minimum.
func StatusEstoque(atual, minimo int) string {
	switch {
	case atual == 0:
		return StatusSemEstoque
	case atual*4 < minimo:
		return StatusCritico
	case atual < minimo:
		return StatusAviso
	default:
		return StatusOK
	}
}

// SugestaoReposicao returns how many units bring the item back to its maximum.
func SugestaoReposicao(atual, maximo int) int {
	if atual >= maximo {
		return 0
	}
	return maximo - atual
}

// CustoReposicao estimates the restock cost. Zero or negative unit prices fall
// back to the estimated default price.
func CustoReposicao(reposicao int, precoUnitario decimal.Decimal) decimal.Decimal {
	if precoUnitario.LessThanOrEqual(decimal.Zero) {
		precoUnitario = precoEstimadoPadrao
	}
	return precoUnitario.Mul(decimal.NewFromInt(int64(reposicao)))
}

// PassivoAcimaDoLimiar is the binary liability check: no warning band, just
// over or under the effective threshold.
func PassivoAcimaDoLimiar(passivo, limiar decimal.Decimal) bool {
	return passivo.GreaterThan(limiar)
}
