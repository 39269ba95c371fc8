package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Jizar07/cabradapeste-sub002/internal/apierror"
	"github.com/Jizar07/cabradapeste-sub002/internal/dto"
	"github.com/Jizar07/cabradapeste-sub002/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reconcileFixture struct {
	lancs    *fakeLancamentoRepo
	ativs    *fakeAtividadeRepo
	gerentes *fakeGerenteRepo
	ledger   LedgerService
	svc      ReconcileService
}

func newReconcileFixture() *reconcileFixture {
	lancs := newFakeLancamentoRepo()
	ativs := newFakeAtividadeRepo(lancs)
	gerentes := newFakeGerenteRepo()
	locks := NewGerenteLocks()
	ledger := NewLedgerService(lancs, gerentes, locks, decimal.NewFromInt(200), nil, nil)
	return &reconcileFixture{
		lancs:    lancs,
		ativs:    ativs,
		gerentes: gerentes,
		ledger:   ledger,
		svc:      NewReconcileService(lancs, ativs, gerentes, locks, ledger),
	}
}

func atividadeDeposito(externalID, autor string, valor float64, automatica bool) model.AtividadeExterna {
	v := decimal.NewFromFloat(valor)
	return model.AtividadeExterna{
		ExternalID:   externalID,
		Autor:        autor,
		Tipo:         "deposit",
		Valor:        &v,
		Automatica:   automatica,
		RegistradoEm: time.Now(),
	}
}

func TestIngerirAtividadeDedupe(t *testing.T) {
	f := newReconcileFixture()
	g := f.gerentes.seed("Zeca")
	ctx := context.Background()

	a := atividadeDeposito("ext-1", "Zeca", 30, false)
	res, err := f.svc.IngerirAtividade(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, IngestaoCriada, res)

	// Re-polling the feed must not double-count.
	res, err = f.svc.IngerirAtividade(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, IngestaoDuplicada, res)

	entries, _ := f.lancs.ListByGerente(ctx, g.ID)
	assert.Len(t, entries, 1)
}

func TestIngerirDepositoAutomaticoExcluido(t *testing.T) {
	f := newReconcileFixture()
	g := f.gerentes.seed("Zeca")
	ctx := context.Background()

	res, err := f.svc.IngerirAtividade(ctx, atividadeDeposito("ext-2", "Zeca", 45, true))
	require.NoError(t, err)
	assert.Equal(t, IngestaoExcluida, res)

	entries, _ := f.lancs.ListByGerente(ctx, g.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, model.TipoDepositoExcluido, entries[0].Tipo)

	passivo, _ := f.ledger.CalcularPassivo(ctx, g.ID)
	assert.True(t, passivo.Total.IsZero())
}

func TestIngerirAtividadeNaoMonetaria(t *testing.T) {
	f := newReconcileFixture()
	g := f.gerentes.seed("Zeca")
	ctx := context.Background()

	res, err := f.svc.IngerirAtividade(ctx, model.AtividadeExterna{
		ExternalID: "ext-3", Autor: "Zeca", Tipo: "add", Item: "Semente de Trigo", Quantidade: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, IngestaoCriada, res)

	// Mirror row only — no ledger entry, but the re-sync still dedupes.
	entries, _ := f.lancs.ListByGerente(ctx, g.ID)
	assert.Empty(t, entries)

	res, err = f.svc.IngerirAtividade(ctx, model.AtividadeExterna{
		ExternalID: "ext-3", Autor: "Zeca", Tipo: "add", Item: "Semente de Trigo", Quantidade: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, IngestaoDuplicada, res)

	mirrors, _ := f.ativs.ListByAutor(ctx, "Zeca", 0)
	require.Len(t, mirrors, 1)
	assert.Equal(t, model.CategoriaSeedsIn, mirrors[0].Categoria)
}

// A failed ledger append must not leave the mirror row behind: the mirror
// anchors the dedupe, so a stray row would turn every retry into a duplicate
// and the deposit would never reach the ledger.
func TestIngerirAtividadeFalhaSemEscritaParcial(t *testing.T) {
	f := newReconcileFixture()
	g := f.gerentes.seed("Zeca")
	ctx := context.Background()

	f.lancs.failNext = errors.New("connection reset by peer")
	_, err := f.svc.IngerirAtividade(ctx, atividadeDeposito("ext-6", "Zeca", 30, false))
	require.Error(t, err)

	entries, _ := f.lancs.ListByGerente(ctx, g.ID)
	assert.Empty(t, entries)
	mirrors, _ := f.ativs.ListByAutor(ctx, "Zeca", 0)
	assert.Empty(t, mirrors, "mirror row must roll back with the failed append")

	// The next sync cycle retries the same activity and it lands normally.
	res, err := f.svc.IngerirAtividade(ctx, atividadeDeposito("ext-6", "Zeca", 30, false))
	require.NoError(t, err)
	assert.Equal(t, IngestaoCriada, res)

	entries, _ = f.lancs.ListByGerente(ctx, g.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, model.TipoDeposito, entries[0].Tipo)
}

func TestIngerirAtividadeMalformada(t *testing.T) {
	f := newReconcileFixture()
	f.gerentes.seed("Zeca")

	_, err := f.svc.IngerirAtividade(context.Background(), model.AtividadeExterna{ExternalID: "ext-4", Autor: "", Tipo: "add"})
	require.Error(t, err)
	assert.Equal(t, 400, apierror.Status(err))
}

func TestIngerirAutorDesconhecido(t *testing.T) {
	f := newReconcileFixture()

	_, err := f.svc.IngerirAtividade(context.Background(), atividadeDeposito("ext-5", "Fantasma", 10, false))
	require.Error(t, err)
	assert.Equal(t, 404, apierror.Status(err))
}

// Reversal appends a new fact; the original payment stays, the fold nets out.
func TestEstornoSimetria(t *testing.T) {
	f := newReconcileFixture()
	g := f.gerentes.seed("Zeca")
	ctx := context.Background()

	atividadeID := "ativ-9"
	_, err := f.ledger.RegistrarRetirada(ctx, dto.RetiradaRequest{GerenteID: g.ID.String(), Valor: d(100), Motivo: "caixa"})
	require.NoError(t, err)
	_, err = f.ledger.RegistrarPagamento(ctx, dto.PagamentoRequest{
		GerenteID: g.ID.String(), TrabalhadorID: "joao", Valor: d(40),
		AtividadeID: &atividadeID, Categoria: string(model.CategoriaPlantsIn),
	})
	require.NoError(t, err)

	antes, _ := f.ledger.CalcularPassivo(ctx, g.ID)
	require.True(t, d(60).Equal(antes.Total))

	estorno, err := f.svc.Estornar(ctx, dto.EstornoRequest{
		GerenteID: g.ID.String(), Categoria: string(model.CategoriaPlantsIn), AtividadeID: atividadeID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.TipoEstorno), estorno.Tipo)
	require.NotNil(t, estorno.EstornoDeID)

	depois, _ := f.ledger.CalcularPassivo(ctx, g.ID)
	assert.True(t, d(100).Equal(depois.Total), "estorno restores the discharged liability")

	entries, _ := f.lancs.ListByGerente(ctx, g.ID)
	assert.Len(t, entries, 3, "original pagamento is never deleted")

	// A pagamento is reversible at most once.
	_, err = f.svc.Estornar(ctx, dto.EstornoRequest{
		GerenteID: g.ID.String(), Categoria: string(model.CategoriaPlantsIn), AtividadeID: atividadeID,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apierror.Status(err))
}

func TestEstornarTodosPorCategoria(t *testing.T) {
	f := newReconcileFixture()
	g := f.gerentes.seed("Zeca")
	ctx := context.Background()

	for _, ativ := range []string{"a1", "a2", "a3"} {
		ativ := ativ
		_, err := f.ledger.RegistrarPagamento(ctx, dto.PagamentoRequest{
			GerenteID: g.ID.String(), TrabalhadorID: "joao", Valor: d(10),
			AtividadeID: &ativ, Categoria: string(model.CategoriaFeedIn),
		})
		require.NoError(t, err)
	}
	outra := "b1"
	_, err := f.ledger.RegistrarPagamento(ctx, dto.PagamentoRequest{
		GerenteID: g.ID.String(), TrabalhadorID: "joao", Valor: d(10),
		AtividadeID: &outra, Categoria: string(model.CategoriaSeedsIn),
	})
	require.NoError(t, err)

	resp, err := f.svc.EstornarTodos(ctx, dto.EstornoTodosRequest{
		GerenteID: g.ID.String(), Categoria: string(model.CategoriaFeedIn),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Estornados)
	assert.True(t, d(30).Equal(resp.Valor))

	// Only the feed_in payments were reversed: -40 +30 = -10.
	passivo, _ := f.ledger.CalcularPassivo(ctx, g.ID)
	assert.True(t, d(-10).Equal(passivo.Total))
}
