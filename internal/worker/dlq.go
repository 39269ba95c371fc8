package worker

// Jobs that exhaust their retries are parked on a dead-letter list beside the
// queue they came from (dlq:jobs:alertas, dlq:jobs:relatorios). Entries keep
// the raw payload so an operator can replay them with redis-cli once the
// underlying failure is fixed — usually SMTP for alertas, disk or SMTP for
// relatorios.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry is the parked job plus the context needed to triage it.
type DLQEntry struct {
	Fila     string          `json:"fila"`
	Tipo     string          `json:"tipo"`
	Payload  json.RawMessage `json:"payload"`
	Motivo   string          `json:"motivo"`
	Attempts int             `json:"attempts"`
	FalhouEm time.Time       `json:"falhou_em"`
}

// SendToDLQ parks a job whose retries ran out.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue, tipo string, payload json.RawMessage, motivo string, attempts int) {
	entry := DLQEntry{
		Fila:     queue,
		Tipo:     tipo,
		Payload:  payload,
		Motivo:   motivo,
		Attempts: attempts,
		FalhouEm: time.Now().UTC(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("fila", queue).Msg("dlq: falha ao serializar entrada")
		return
	}
	if err := rdb.LPush(ctx, DLQPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("fila", DLQPrefix+queue).Msg("dlq: falha ao enfileirar")
		return
	}

	log.Warn().
		Str("fila", queue).
		Str("tipo", tipo).
		Str("motivo", motivo).
		Int("attempts", attempts).
		Msg("job esgotou as tentativas, movido para a dlq")
}

// DLQLength reports how many jobs are parked for a queue.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
