package quotarepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gotrace/internal/domain"
	"gotrace/internal/errors"
	"gotrace/internal/pkg/logger"
)

// RedisEvaler é a superfície mínima do cliente Redis usada pelo ledger.
// cache.Client a satisfaz.
type RedisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error)
}

// RedisLedger guarda o saldo em quota:<empresa>:<recurso> e aplica débito e
// crédito com scripts Lua, atômicos no servidor. Cada movimento vai para
// quota-movements:<empresa> (lista limitada).
type RedisLedger struct {
	client       RedisEvaler
	timeout      time.Duration
	maxMovements int
	logger       logger.Logger
}

// NewRedisLedger cria o ledger Redis.
func NewRedisLedger(client RedisEvaler, timeout time.Duration, log logger.Logger) *RedisLedger {
	return &RedisLedger{client: client, timeout: timeout, maxMovements: 10000, logger: log}
}

// Retorna {1, saldo} quando debitou e {0, saldo} quando não há saldo.
const consumeScript = `
local balance = tonumber(redis.call('GET', KEYS[1]) or '0')
local qty = tonumber(ARGV[1])
if balance < qty then
  return {0, balance}
end
local after = redis.call('DECRBY', KEYS[1], qty)
redis.call('LPUSH', KEYS[2], ARGV[2])
redis.call('LTRIM', KEYS[2], 0, tonumber(ARGV[3]) - 1)
return {1, after}
`

// Retorna o novo saldo.
const creditScript = `
local after = redis.call('INCRBY', KEYS[1], tonumber(ARGV[1]))
redis.call('LPUSH', KEYS[2], ARGV[2])
redis.call('LTRIM', KEYS[2], 0, tonumber(ARGV[3]) - 1)
return after
`

// BalanceKey e MovementsKey são públicos para ferramentas administrativas.
func BalanceKey(companyID, resource string) string { return fmt.Sprintf("quota:%s:%s", companyID, resource) }
func MovementsKey(companyID string) string         { return fmt.Sprintf("quota-movements:%s", companyID) }

// Consume debita qty se houver saldo.
func (l *RedisLedger) Consume(ctx context.Context, companyID, resource string, qty int64) (domain.ConsumeResult, error) {
	if qty <= 0 {
		return domain.ConsumeResult{}, errors.NewValidationError("Quantidade a consumir deve ser positiva.")
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	res, err := l.client.Eval(ctxTimeout, consumeScript, l.keys(companyID, resource),
		qty, movement(resource, domain.MovementConsume, qty), l.maxMovements)
	if err != nil {
		return domain.ConsumeResult{}, errors.NewInternalError("Falha ao debitar cota no Redis", err)
	}

	pair, ok := res.([]interface{})
	if !ok || len(pair) != 2 {
		return domain.ConsumeResult{}, errors.NewInternalError(fmt.Sprintf("Resposta inesperada do script de cota: %v", res), nil)
	}
	applied, okA := pair[0].(int64)
	remaining, okB := pair[1].(int64)
	if !okA || !okB {
		return domain.ConsumeResult{}, errors.NewInternalError(fmt.Sprintf("Resposta inesperada do script de cota: %v", res), nil)
	}

	return domain.ConsumeResult{OK: applied == 1, Remaining: remaining}, nil
}

// Refund devolve qty ao saldo.
func (l *RedisLedger) Refund(ctx context.Context, companyID, resource string, qty int64) error {
	_, err := l.credit(ctx, companyID, resource, domain.MovementRefund, qty)
	return err
}

// AddOn credita um pacote adicional e devolve o novo saldo.
func (l *RedisLedger) AddOn(ctx context.Context, companyID, resource string, qty int64) (int64, error) {
	return l.credit(ctx, companyID, resource, domain.MovementAddOn, qty)
}

func (l *RedisLedger) credit(ctx context.Context, companyID, resource, kind string, qty int64) (int64, error) {
	if qty <= 0 {
		return 0, errors.NewValidationError("Quantidade a creditar deve ser positiva.")
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	res, err := l.client.Eval(ctxTimeout, creditScript, l.keys(companyID, resource),
		qty, movement(resource, kind, qty), l.maxMovements)
	if err != nil {
		return 0, errors.NewInternalError(fmt.Sprintf("Falha ao creditar cota no Redis (%s)", kind), err)
	}
	balance, ok := res.(int64)
	if !ok {
		return 0, errors.NewInternalError(fmt.Sprintf("Resposta inesperada do script de cota: %v", res), nil)
	}
	return balance, nil
}

func (l *RedisLedger) keys(companyID, resource string) []string {
	return []string{BalanceKey(companyID, resource), MovementsKey(companyID)}
}

// movement serializa o registro de auditoria: id|recurso|tipo|quantidade|unix.
func movement(resource, kind string, qty int64) string {
	return fmt.Sprintf("%s|%s|%s|%d|%d", uuid.NewString(), resource, kind, qty, time.Now().Unix())
}
