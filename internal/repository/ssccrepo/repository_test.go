package ssccrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gotrace/internal/domain"
	apperror "gotrace/internal/errors"
	"gotrace/internal/pkg/logger"
	"gotrace/internal/repository/ssccrepo"
)

func TestTableFor(t *testing.T) {
	for level, want := range map[domain.Level]string{
		domain.LevelBox:    "sscc_boxes",
		domain.LevelCarton: "sscc_cartons",
		domain.LevelPallet: "sscc_pallets",
	} {
		got, err := ssccrepo.TableFor(level)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, level := range []domain.Level{0, -1, domain.LevelPallet + 1, 9} {
		_, err := ssccrepo.TableFor(level)
		assert.Error(t, err, "nível %d", int(level))
	}
}

func TestTableFor_CoversEveryLevel(t *testing.T) {
	for _, level := range domain.Levels {
		assert.True(t, level.Valid())
		table, err := ssccrepo.TableFor(level)
		assert.NoError(t, err)
		assert.NotEmpty(t, table)
	}
}

func TestInsert_EmptyBatchIsNoop(t *testing.T) {
	repo := ssccrepo.NewSSCCRepository(nil, time.Second, logger.Nop())
	assert.NoError(t, repo.Insert(context.Background(), domain.LevelBox, nil))
}

func TestInsert_Fail_InvalidLevel(t *testing.T) {
	repo := ssccrepo.NewSSCCRepository(nil, time.Second, logger.Nop())
	err := repo.Insert(context.Background(), domain.Level(0), []domain.SSCCRecord{{}})
	assert.IsType(t, &apperror.ValidationError{}, err)
}
