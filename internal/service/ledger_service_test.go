package service

import (
	"context"
	"sync"
	"testing"

	"github.com/Jizar07/cabradapeste-sub002/internal/apierror"
	"github.com/Jizar07/cabradapeste-sub002/internal/dto"
	"github.com/Jizar07/cabradapeste-sub002/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerFixture() (*fakeLancamentoRepo, *fakeGerenteRepo, *fakeNotificador, LedgerService) {
	lancs := newFakeLancamentoRepo()
	gerentes := newFakeGerenteRepo()
	notificador := &fakeNotificador{}
	svc := NewLedgerService(lancs, gerentes, NewGerenteLocks(), decimal.NewFromInt(200), notificador, &fakeVistos{vistos: map[string]bool{}})
	return lancs, gerentes, notificador, svc
}

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestPassivoSemLancamentos(t *testing.T) {
	_, gerentes, _, svc := newLedgerFixture()
	g := gerentes.seed("Zeca")

	passivo, err := svc.CalcularPassivo(context.Background(), g.ID)
	require.NoError(t, err)
	assert.True(t, passivo.Total.IsZero())
}

// Retiradas raise liability, pagamentos discharge it, deposits stay neutral.
func TestPassivoConservacao(t *testing.T) {
	_, gerentes, _, svc := newLedgerFixture()
	g := gerentes.seed("Zeca")
	ctx := context.Background()

	_, err := svc.RegistrarRetirada(ctx, dto.RetiradaRequest{GerenteID: g.ID.String(), Valor: d(150), Motivo: "pagar diaristas"})
	require.NoError(t, err)
	_, err = svc.RegistrarDeposito(ctx, dto.DepositoRequest{GerenteID: g.ID.String(), Valor: d(999), Motivo: "venda de leite"})
	require.NoError(t, err)
	_, err = svc.RegistrarPagamento(ctx, dto.PagamentoRequest{GerenteID: g.ID.String(), TrabalhadorID: "joao", Valor: d(60)})
	require.NoError(t, err)

	passivo, err := svc.CalcularPassivo(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, d(90).Equal(passivo.Total), "got %s", passivo.Total)
	assert.True(t, d(150).Equal(passivo.Retiradas))
	assert.True(t, d(60).Equal(passivo.Pagamentos))
}

func TestRetiradaValorInvalido(t *testing.T) {
	_, gerentes, _, svc := newLedgerFixture()
	g := gerentes.seed("Zeca")

	_, err := svc.RegistrarRetirada(context.Background(), dto.RetiradaRequest{GerenteID: g.ID.String(), Valor: d(-10), Motivo: "teste"})
	require.Error(t, err)
	assert.Equal(t, 400, apierror.Status(err))
}

func TestRetiradaGerenteInativo(t *testing.T) {
	_, gerentes, _, svc := newLedgerFixture()
	g := gerentes.seed("Zeca")
	g.Ativo = false

	_, err := svc.RegistrarRetirada(context.Background(), dto.RetiradaRequest{GerenteID: g.ID.String(), Valor: d(10), Motivo: "teste"})
	require.Error(t, err)
	assert.Equal(t, 400, apierror.Status(err))
}

func TestRetiradaGerenteDesconhecido(t *testing.T) {
	_, _, _, svc := newLedgerFixture()

	_, err := svc.RegistrarRetirada(context.Background(), dto.RetiradaRequest{
		GerenteID: "0b8457ae-4f2b-4f43-9d43-55a1f626b375", Valor: d(10), Motivo: "teste",
	})
	require.Error(t, err)
	assert.Equal(t, 404, apierror.Status(err))
}

func TestDepositoAutomaticoExcluido(t *testing.T) {
	_, gerentes, _, svc := newLedgerFixture()
	g := gerentes.seed("Zeca")
	ctx := context.Background()

	resp, err := svc.RegistrarDeposito(ctx, dto.DepositoRequest{
		GerenteID: g.ID.String(), Valor: d(80), Motivo: "venda automatica", Automatico: true,
	})
	require.NoError(t, err)
	assert.True(t, resp.Excluido)
	assert.Equal(t, string(model.TipoDepositoExcluido), resp.Lancamento.Tipo)

	// Excluded deposits never touch the liability.
	passivo, err := svc.CalcularPassivo(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, passivo.Total.IsZero())
}

func TestPagamentoAtribuidoExigeRetiradaDoGerente(t *testing.T) {
	_, gerentes, _, svc := newLedgerFixture()
	g := gerentes.seed("Zeca")
	outro := gerentes.seed("Chico")
	ctx := context.Background()

	ret, err := svc.RegistrarRetirada(ctx, dto.RetiradaRequest{GerenteID: outro.ID.String(), Valor: d(100), Motivo: "caixa"})
	require.NoError(t, err)

	// Attributing Zeca's payment to Chico's withdrawal is an inconsistency.
	_, err = svc.RegistrarPagamento(ctx, dto.PagamentoRequest{
		GerenteID: g.ID.String(), TrabalhadorID: "joao", Valor: d(30), RetiradaID: &ret.ID,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apierror.Status(err))
}

func TestResetPassivoAppendOnly(t *testing.T) {
	lancs, gerentes, _, svc := newLedgerFixture()
	g := gerentes.seed("Zeca")
	ctx := context.Background()

	// Drive the liability negative: over-payment.
	_, err := svc.RegistrarRetirada(ctx, dto.RetiradaRequest{GerenteID: g.ID.String(), Valor: d(50), Motivo: "caixa"})
	require.NoError(t, err)
	_, err = svc.RegistrarPagamento(ctx, dto.PagamentoRequest{GerenteID: g.ID.String(), TrabalhadorID: "joao", Valor: d(120)})
	require.NoError(t, err)

	passivo, _ := svc.CalcularPassivo(ctx, g.ID)
	require.True(t, d(-70).Equal(passivo.Total))

	ajuste, err := svc.ResetarPassivo(ctx, g.ID, dto.ResetPassivoRequest{Baseline: decimal.Zero, Motivo: "correcao de pagamento duplicado"})
	require.NoError(t, err)
	assert.Equal(t, string(model.TipoAjusteDebito), ajuste.Tipo)

	// History preserved: three entries, nothing rewritten.
	entries, _ := lancs.ListByGerente(ctx, g.ID)
	assert.Len(t, entries, 3)

	passivo, _ = svc.CalcularPassivo(ctx, g.ID)
	assert.True(t, passivo.Total.IsZero())
}

func TestResetPassivoJaNaBaseline(t *testing.T) {
	_, gerentes, _, svc := newLedgerFixture()
	g := gerentes.seed("Zeca")

	_, err := svc.ResetarPassivo(context.Background(), g.ID, dto.ResetPassivoRequest{Baseline: decimal.Zero, Motivo: "nada a corrigir"})
	require.Error(t, err)
	assert.Equal(t, 409, apierror.Status(err))
}

func TestAlertaDisparadoAcimaDoLimiar(t *testing.T) {
	_, gerentes, notificador, svc := newLedgerFixture()
	g := gerentes.seed("Zeca")
	ctx := context.Background()

	_, err := svc.RegistrarRetirada(ctx, dto.RetiradaRequest{GerenteID: g.ID.String(), Valor: d(150), Motivo: "caixa"})
	require.NoError(t, err)
	assert.Equal(t, 0, notificador.count(), "150 is under the 200 threshold")

	_, err = svc.RegistrarRetirada(ctx, dto.RetiradaRequest{GerenteID: g.ID.String(), Valor: d(100), Motivo: "mais caixa"})
	require.NoError(t, err)
	assert.Equal(t, 1, notificador.count(), "250 crosses the threshold")
}

func TestAlertaLimiarPorGerente(t *testing.T) {
	_, gerentes, notificador, svc := newLedgerFixture()
	g := gerentes.seed("Zeca")
	limiar := d(50)
	g.LimiarPassivo = &limiar
	ctx := context.Background()

	_, err := svc.RegistrarRetirada(ctx, dto.RetiradaRequest{GerenteID: g.ID.String(), Valor: d(60), Motivo: "caixa"})
	require.NoError(t, err)
	assert.Equal(t, 1, notificador.count(), "per-gerente override beats the global threshold")
}

func TestListarAlertasPassivo(t *testing.T) {
	_, gerentes, _, svc := newLedgerFixture()
	acima := gerentes.seed("Zeca")
	gerentes.seed("Chico")
	ctx := context.Background()

	_, err := svc.RegistrarRetirada(ctx, dto.RetiradaRequest{GerenteID: acima.ID.String(), Valor: d(300), Motivo: "caixa"})
	require.NoError(t, err)

	alertas, err := svc.ListarAlertasPassivo(ctx)
	require.NoError(t, err)
	require.Len(t, alertas, 1)
	assert.Equal(t, "Zeca", alertas[0].Nome)
	assert.False(t, alertas[0].Visto)
}

func TestFluxoJanelaETotais(t *testing.T) {
	_, gerentes, _, svc := newLedgerFixture()
	g := gerentes.seed("Zeca")
	ctx := context.Background()

	_, err := svc.RegistrarRetirada(ctx, dto.RetiradaRequest{GerenteID: g.ID.String(), Valor: d(100), Motivo: "caixa"})
	require.NoError(t, err)
	_, err = svc.RegistrarDeposito(ctx, dto.DepositoRequest{GerenteID: g.ID.String(), Valor: d(40), Motivo: "venda de ovos"})
	require.NoError(t, err)

	fluxo, err := svc.RelatorioFluxo(ctx, g.ID, 7)
	require.NoError(t, err)
	assert.Len(t, fluxo.Lancamentos, 2)
	assert.True(t, d(100).Equal(fluxo.TotalRetiradas))
	assert.True(t, d(40).Equal(fluxo.TotalDepositos))
	assert.True(t, d(100).Equal(fluxo.Passivo))
}

// Parallel withdrawals for one gerente must serialize: the final fold equals
// the sum of all amounts, with no lost updates.
func TestRetiradasConcorrentesConservam(t *testing.T) {
	_, gerentes, _, svc := newLedgerFixture()
	g := gerentes.seed("Zeca")
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RegistrarRetirada(ctx, dto.RetiradaRequest{GerenteID: g.ID.String(), Valor: d(1), Motivo: "concorrencia"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	passivo, err := svc.CalcularPassivo(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, d(n).Equal(passivo.Total), "got %s", passivo.Total)
}
