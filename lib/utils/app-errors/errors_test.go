package apperrors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	t.Run(`kind check`, func(t *testing.T) {
		err := NotFound("работа не найдена")
		require.True(t, errors.Is(err, ErrNotFound))
		require.False(t, errors.Is(err, ErrConflict))
		require.Equal(t, "работа не найдена", err.Error())
		require.True(t, IsBusiness(err))
	})

	t.Run(`wrapped kind check`, func(t *testing.T) {
		err := errors.Wrap(Conflictf("статус %v", "Completed"), "проверка")
		require.True(t, errors.Is(err, ErrConflict))
		require.True(t, IsBusiness(err))
	})

	t.Run(`store error is not business`, func(t *testing.T) {
		err := errors.New("connection refused")
		require.False(t, IsBusiness(err))
	})
}
