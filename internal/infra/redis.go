package infra

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// NewRedis creates and validates a go-redis client connection.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	// Validate connectivity at startup
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

// ── Inventory quantity mirror ────────────────────────────────────────────────
// The inventory collaborator publishes current item quantities into the redis
// hash below. This service only reads them to derive stock status.

const estoqueQuantidadesKey = "estoque:quantidades"

// EstoqueQuantidades reads current inventory quantities from redis.
type EstoqueQuantidades struct {
	rdb *redis.Client
}

func NewEstoqueQuantidades(rdb *redis.Client) *EstoqueQuantidades {
	return &EstoqueQuantidades{rdb: rdb}
}

// QuantidadeAtual returns the current quantity for one item. A missing field
// means the collaborator has not reported the item yet — treated as zero stock.
func (e *EstoqueQuantidades) QuantidadeAtual(ctx context.Context, itemID string) (int, error) {
	val, err := e.rdb.HGet(ctx, estoqueQuantidadesKey, itemID).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	qty, err := strconv.Atoi(val)
	if err != nil {
		return 0, err
	}
	return qty, nil
}

// Quantidades returns the full quantity map in one round trip.
func (e *EstoqueQuantidades) Quantidades(ctx context.Context) (map[string]int, error) {
	raw, err := e.rdb.HGetAll(ctx, estoqueQuantidadesKey).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(raw))
	for item, val := range raw {
		qty, err := strconv.Atoi(val)
		if err != nil {
			continue // malformed field — skip rather than fail the whole read
		}
		out[item] = qty
	}
	return out, nil
}

// ── Alert seen-flags ─────────────────────────────────────────────────────────
// Alerts are derived and ephemeral; only the operator's "seen" flag survives,
// as members of a redis set keyed by alert fingerprint.

const alertasVistosKey = "alertas:vistos"

type AlertasVistos struct {
	rdb *redis.Client
}

func NewAlertasVistos(rdb *redis.Client) *AlertasVistos {
	return &AlertasVistos{rdb: rdb}
}

func (a *AlertasVistos) MarcarVisto(ctx context.Context, fingerprint string) error {
	return a.rdb.SAdd(ctx, alertasVistosKey, fingerprint).Err()
}

func (a *AlertasVistos) Visto(ctx context.Context, fingerprint string) (bool, error) {
	return a.rdb.SIsMember(ctx, alertasVistosKey, fingerprint).Result()
}
