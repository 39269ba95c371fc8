package worker

// alerta_worker.go
// Processes liability alert jobs from QueueAlertas: a gerente crossed the
// threshold and the operations inbox gets notified by email.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Jizar07/cabradapeste-sub002/internal/dto"
	"github.com/Jizar07/cabradapeste-sub002/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertaWorker delivers liability alerts via SMTP.
type AlertaWorker struct {
	mailer *infra.Mailer
	// alertaEmail is the operations inbox (ALERTA_EMAIL).
	alertaEmail string
}

func NewAlertaWorker(mailer *infra.Mailer, alertaEmail string) *AlertaWorker {
	return &AlertaWorker{mailer: mailer, alertaEmail: alertaEmail}
}

func (w *AlertaWorker) Process(_ context.Context, raw json.RawMessage) error {
	var alerta dto.AlertaPassivoResponse
	if err := json.Unmarshal(raw, &alerta); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		// Malformed payloads never succeed — don't retry.
		return nil
	}
	if w.alertaEmail == "" {
		log.Warn().Msg("alerta_worker: ALERTA_EMAIL not configured — skipping")
		return nil
	}

	subject := fmt.Sprintf("[Cabra da Peste] Passivo acima do limiar: %s", alerta.Nome)
	body := fmt.Sprintf(
		"O gerente %s esta com passivo de $%s, acima do limiar de $%s.\n\n"+
			"Fingerprint do alerta: %s\n",
		alerta.Nome, alerta.Passivo.StringFixed(2), alerta.Limiar.StringFixed(2), alerta.Fingerprint,
	)

	if err := w.mailer.SendAlerta(w.alertaEmail, subject, body); err != nil {
		log.Error().Err(err).Str("gerente", alerta.Nome).Msg("alerta_worker: failed to send alert")
		return err
	}
	log.Info().Str("gerente", alerta.Nome).Msg("alerta_worker: alert delivered")
	return nil
}
