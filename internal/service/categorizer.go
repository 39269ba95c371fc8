package service

import (
	"strings"

	"github.com/Jizar07/cabradapeste-sub002/internal/model"
)

// Keyword sets for item classification. Matched case-insensitively as
// substrings of the item name, in priority order: the dashboard feed mixes
// Portuguese and English item names, so both spellings are listed.
var (
	kwSementes = []string{"semente", "seed", "muda"}
	kwAnimais  = []string{
		"vaca", "touro", "boi", "bezerro",
		"ovelha", "carneiro", "cordeiro",
		"porco", "leitao",
		"galinha", "galo", "pinto",
		"cabra", "bode",
		"cavalo", "mula", "burro",
		"cow", "bull", "sheep", "pig", "chicken", "goat", "horse",
	}
	kwRacoes      = []string{"racao", "feno", "trato", "alfafa", "feed", "hay"}
	kwRecipientes = []string{"caixa", "bau", "engradado", "barril", "box", "crate"}
	kwPlantas     = []string{"milho", "junco", "trigo", "cana", "mandioca", "fumo", "corn", "reed", "wheat"}
	kwProdutos    = []string{"leite", "couro", "carne", "ovo", "la de", "banha", "milk", "leather", "meat", "egg", "wool"}
)

// Categorizar classifies one feed activity. Pure and deterministic: first
// matching rule wins, no match degrades to CategoriaOutros instead of failing.
func Categorizar(a model.AtividadeExterna) model.Categoria {
	item := strings.ToLower(a.Item)

	if item != "" {
		entrada := a.Tipo != "remove" && a.Tipo != "withdraw"
		switch {
		case contemAlgum(item, kwSementes):
			return direcionada(model.CategoriaSeedsIn, model.CategoriaSeedsOut, entrada)
		case contemAlgum(item, kwAnimais):
			return direcionada(model.CategoriaAnimalsIn, model.CategoriaAnimalsOut, entrada)
		case contemAlgum(item, kwRacoes):
			return direcionada(model.CategoriaFeedIn, model.CategoriaFeedOut, entrada)
		case contemAlgum(item, kwRecipientes):
			// Manufactured goods are always an input category, whichever way
			// the underlying activity moved them.
			return model.CategoriaManufacturedIn
		case contemAlgum(item, kwPlantas):
			return model.CategoriaPlantsIn
		case contemAlgum(item, kwProdutos):
			return model.CategoriaAnimalProductsIn
		}
		return model.CategoriaOutros
	}

	if a.Valor != nil && !a.Valor.IsZero() {
		return model.CategoriaFinancial
	}
	return model.CategoriaOutros
}

func contemAlgum(item string, kws []string) bool {
	for _, kw := range kws {
		if strings.Contains(item, kw) {
			return true
		}
	}
	return false
}

func direcionada(entrada, saida model.Categoria, isEntrada bool) model.Categoria {
	if isEntrada {
		return entrada
	}
	return saida
}
