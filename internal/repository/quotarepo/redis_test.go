package quotarepo_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotrace/internal/domain"
	apperror "gotrace/internal/errors"
	"gotrace/internal/pkg/logger"
	"gotrace/internal/repository/quotarepo"
)

// scriptedRedis reproduz em memória o efeito dos scripts do ledger.
type scriptedRedis struct {
	mu        sync.Mutex
	balances  map[string]int64
	movements map[string][]string
	err       error
}

func newScriptedRedis() *scriptedRedis {
	return &scriptedRedis{balances: map[string]int64{}, movements: map[string][]string{}}
}

func (s *scriptedRedis) Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	qty := args[0].(int64)
	balanceKey, movementsKey := keys[0], keys[1]

	if strings.Contains(script, "DECRBY") {
		if s.balances[balanceKey] < qty {
			return []interface{}{int64(0), s.balances[balanceKey]}, nil
		}
		s.balances[balanceKey] -= qty
		s.movements[movementsKey] = append(s.movements[movementsKey], args[1].(string))
		return []interface{}{int64(1), s.balances[balanceKey]}, nil
	}
	s.balances[balanceKey] += qty
	s.movements[movementsKey] = append(s.movements[movementsKey], args[1].(string))
	return s.balances[balanceKey], nil
}

func TestRedisLedger_ConsumeAndRefund(t *testing.T) {
	rdb := newScriptedRedis()
	ledger := quotarepo.NewRedisLedger(rdb, time.Second, logger.Nop())
	ctx := context.Background()

	balance, err := ledger.AddOn(ctx, "acme", domain.QuotaResourceSSCC, 40)
	require.NoError(t, err)
	assert.Equal(t, int64(40), balance)

	res, err := ledger.Consume(ctx, "acme", domain.QuotaResourceSSCC, 32)
	require.NoError(t, err)
	assert.Equal(t, domain.ConsumeResult{OK: true, Remaining: 8}, res)

	res, err = ledger.Consume(ctx, "acme", domain.QuotaResourceSSCC, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.ConsumeResult{OK: false, Remaining: 8}, res, "saldo insuficiente não debita")

	require.NoError(t, ledger.Refund(ctx, "acme", domain.QuotaResourceSSCC, 32))
	assert.Equal(t, int64(40), rdb.balances[quotarepo.BalanceKey("acme", domain.QuotaResourceSSCC)])

	moves := rdb.movements[quotarepo.MovementsKey("acme")]
	require.Len(t, moves, 3)
	assert.Contains(t, moves[0], "|sscc|add_on|40|")
	assert.Contains(t, moves[1], "|sscc|consume|32|")
	assert.Contains(t, moves[2], "|sscc|refund|32|")
}

func TestRedisLedger_Fail(t *testing.T) {
	rdb := newScriptedRedis()
	ledger := quotarepo.NewRedisLedger(rdb, time.Second, logger.Nop())

	_, err := ledger.Consume(context.Background(), "acme", "sscc", 0)
	assert.IsType(t, &apperror.ValidationError{}, err)

	rdb.err = errors.New("i/o timeout")
	_, err = ledger.Consume(context.Background(), "acme", "sscc", 1)
	assert.IsType(t, &apperror.InternalError{}, err)
	assert.Error(t, ledger.Refund(context.Background(), "acme", "sscc", 1))
}

func TestNewLedger(t *testing.T) {
	l, err := quotarepo.NewLedger(quotarepo.BackendRedis, nil, newScriptedRedis(), time.Second, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &quotarepo.RedisLedger{}, l)

	_, err = quotarepo.NewLedger(quotarepo.BackendPostgres, nil, nil, time.Second, logger.Nop())
	assert.Error(t, err)

	_, err = quotarepo.NewLedger("etcd", nil, nil, time.Second, logger.Nop())
	assert.Error(t, err)
}
