package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Jizar07/cabradapeste-sub002/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSyncFixture(feed *fakeFeed) (*reconcileFixture, SyncService) {
	f := newReconcileFixture()
	return f, NewSyncService(feed, f.svc)
}

func TestSincronizarTudoContagens(t *testing.T) {
	feed := &fakeFeed{atividades: []model.AtividadeExterna{
		atividadeDeposito("s-1", "Zeca", 20, false),
		atividadeDeposito("s-2", "Zeca", 35, true),
		{ExternalID: "s-3", Autor: "Chico", Tipo: "add", Item: "Feno"},
		atividadeDeposito("s-4", "Fantasma", 10, false), // unknown author
		{ExternalID: "s-5", Autor: "", Tipo: "add"},     // malformed
	}}
	f, svc := newSyncFixture(feed)
	f.gerentes.seed("Zeca")
	f.gerentes.seed("Chico")

	resumo, err := svc.SincronizarTudo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resumo.Sincronizadas)
	assert.Equal(t, 1, resumo.Excluidas)
	assert.Equal(t, []string{"s-4", "s-5"}, resumo.Falhas)
}

// Re-running a full cycle is a no-op thanks to ingestion dedupe.
func TestSincronizarTudoIdempotente(t *testing.T) {
	feed := &fakeFeed{atividades: []model.AtividadeExterna{
		atividadeDeposito("i-1", "Zeca", 20, false),
		atividadeDeposito("i-2", "Zeca", 15, false),
	}}
	f, svc := newSyncFixture(feed)
	g := f.gerentes.seed("Zeca")
	ctx := context.Background()

	primeiro, err := svc.SincronizarTudo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, primeiro.Sincronizadas)

	segundo, err := svc.SincronizarTudo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, segundo.Sincronizadas)
	assert.Empty(t, segundo.Falhas)

	entries, _ := f.lancs.ListByGerente(ctx, g.ID)
	assert.Len(t, entries, 2)
}

// One bad activity never blocks the rest of the batch.
func TestSincronizarFalhaParcial(t *testing.T) {
	feed := &fakeFeed{atividades: []model.AtividadeExterna{
		atividadeDeposito("p-1", "Zeca", 20, false),
		{ExternalID: "p-2", Autor: "Zeca", Tipo: ""},
		atividadeDeposito("p-3", "Zeca", 30, false),
	}}
	f, svc := newSyncFixture(feed)
	g := f.gerentes.seed("Zeca")
	ctx := context.Background()

	resumo, err := svc.SincronizarTudo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, resumo.Sincronizadas)
	assert.Equal(t, []string{"p-2"}, resumo.Falhas)

	entries, _ := f.lancs.ListByGerente(ctx, g.ID)
	assert.Len(t, entries, 2)
}

// A dead feed degrades to an empty cycle, never a hard failure.
func TestSincronizarFeedIndisponivel(t *testing.T) {
	_, svc := newSyncFixture(&fakeFeed{err: errors.New("connection refused")})

	resumo, err := svc.SincronizarTudo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resumo.Sincronizadas)
	assert.Equal(t, 0, resumo.Excluidas)
	assert.Empty(t, resumo.Falhas)
}
