package worker

// relatorio_worker.go
// Processes money-flow report jobs from QueueRelatorios: renders the PDF
// statement for a gerente and optionally emails it to the requester.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Jizar07/cabradapeste-sub002/internal/infra"
	"github.com/Jizar07/cabradapeste-sub002/internal/model"
	"github.com/Jizar07/cabradapeste-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RelatorioJobPayload is the job envelope sent to QueueRelatorios.
type RelatorioJobPayload struct {
	GerenteID string `json:"gerente_id"`
	Dias      int    `json:"dias"`
	Email     string `json:"email,omitempty"`
}

// RelatorioWorker renders money-flow PDF statements.
type RelatorioWorker struct {
	gerentes    repository.GerenteRepository
	lancamentos repository.LancamentoRepository
	mailer      *infra.Mailer
	storagePath string
}

func NewRelatorioWorker(
	gerentes repository.GerenteRepository,
	lancamentos repository.LancamentoRepository,
	mailer *infra.Mailer,
	storagePath string,
) *RelatorioWorker {
	return &RelatorioWorker{
		gerentes:    gerentes,
		lancamentos: lancamentos,
		mailer:      mailer,
		storagePath: storagePath,
	}
}

func (w *RelatorioWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload RelatorioJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("relatorio_worker: invalid payload")
		return nil
	}
	gerenteID, err := uuid.Parse(payload.GerenteID)
	if err != nil {
		log.Error().Str("gerente_id", payload.GerenteID).Msg("relatorio_worker: invalid gerente_id")
		return nil
	}

	gerente, err := w.gerentes.FindByID(ctx, gerenteID)
	if err != nil {
		log.Error().Err(err).Str("gerente_id", payload.GerenteID).Msg("relatorio_worker: gerente not found")
		return nil
	}
	todos, err := w.lancamentos.ListByGerente(ctx, gerenteID)
	if err != nil {
		return err
	}

	// Liability folds the full history; the statement table shows the window.
	corte := time.Now().AddDate(0, 0, -payload.Dias)
	passivo := decimal.Zero
	var janela []model.Lancamento
	for i := range todos {
		passivo = passivo.Add(todos[i].Efeito())
		if !todos[i].CriadoEm.Before(corte) {
			janela = append(janela, todos[i])
		}
	}

	pdfPath, err := infra.GerarRelatorioPDF(gerente, janela, passivo, payload.Dias, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("gerente", gerente.Nome).Str("pdf", pdfPath).Msg("relatorio_worker: report generated")

	if payload.Email == "" {
		return nil
	}
	subject := fmt.Sprintf("[Cabra da Peste] Fluxo financeiro de %s (%d dias)", gerente.Nome, payload.Dias)
	body := fmt.Sprintf("Segue em anexo o relatorio de fluxo financeiro de %s.\nPassivo em aberto: $%s\n",
		gerente.Nome, passivo.StringFixed(2))
	if err := w.mailer.SendRelatorio(payload.Email, subject, body, pdfPath); err != nil {
		log.Error().Err(err).Str("to", payload.Email).Msg("relatorio_worker: failed to send report")
		return err
	}
	log.Info().Str("to", payload.Email).Msg("relatorio_worker: report emailed")
	return nil
}
