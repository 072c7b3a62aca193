package turn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/doudizhu/internal/apperrors"
	"github.com/palemoky/doudizhu/internal/game/card"
	"github.com/palemoky/doudizhu/internal/game/rule"
)

func handOf(t *testing.T, ids string) rule.ParsedHand {
	t.Helper()
	deck := card.NewDeck()
	cards, err := card.FindByIDs(deck, strings.Fields(ids))
	require.NoError(t, err)
	return rule.Classify(cards)
}

func TestMachine_TwoPassesReturnLead(t *testing.T) {
	t.Parallel()

	m := New(1)
	assert.Equal(t, PhaseLeading, m.Phase())

	require.NoError(t, m.Play(1, handOf(t, "S5"), 10))
	assert.Equal(t, 2, m.Active())
	assert.Equal(t, PhaseAwaitingFollow, m.Phase())

	require.NoError(t, m.Pass(2))
	assert.Equal(t, 0, m.Active())
	assert.Equal(t, 1, m.Passes())

	require.NoError(t, m.Pass(0))
	assert.Equal(t, 1, m.Active())
	assert.True(t, m.LastPlay().IsEmpty())
	assert.Equal(t, 0, m.Passes())
	assert.Equal(t, 1, m.LastPlayer())
	assert.Equal(t, PhaseLeading, m.Phase())

	// 重新自由出牌，可以出任意牌型
	require.NoError(t, m.Play(1, handOf(t, "S3 H3"), 8))
}

func TestMachine_PassResetsOnPlay(t *testing.T) {
	t.Parallel()

	m := New(0)
	require.NoError(t, m.Play(0, handOf(t, "S5"), 16))
	require.NoError(t, m.Pass(1))
	require.NoError(t, m.Play(2, handOf(t, "S9"), 16))
	assert.Equal(t, 0, m.Passes())
	require.NoError(t, m.Pass(0))
	assert.Equal(t, 1, m.Active())
	require.NoError(t, m.Pass(1))
	assert.Equal(t, 2, m.Active())
	assert.True(t, m.Leading())
}

func TestMachine_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		act  func(m *Machine) error
		err  error
	}{
		{"pass on first play", func(m *Machine) error { return m.Pass(0) }, apperrors.ErrMustPlay},
		{"out of turn", func(m *Machine) error { return m.Play(1, handOf(t, "S3"), 16) }, apperrors.ErrNotYourTurn},
		{"invalid shape", func(m *Machine) error { return m.Play(0, handOf(t, "S3 H4"), 15) }, apperrors.ErrInvalidCards},
		{"empty play", func(m *Machine) error { return m.Play(0, rule.ParsedHand{}, 17) }, apperrors.ErrInvalidCards},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(0)
			assert.ErrorIs(t, tt.act(m), tt.err)
			assert.Equal(t, 0, m.Active())
			assert.Equal(t, -1, m.LastPlayer())
			assert.Equal(t, PhaseLeading, m.Phase())
		})
	}
}

func TestMachine_CannotBeat(t *testing.T) {
	t.Parallel()

	m := New(0)
	require.NoError(t, m.Play(0, handOf(t, "S9 H9"), 15))

	assert.ErrorIs(t, m.Play(1, handOf(t, "S5 H5"), 15), apperrors.ErrCannotBeat)
	assert.ErrorIs(t, m.Play(1, handOf(t, "SK"), 16), apperrors.ErrCannotBeat)
	assert.Equal(t, 1, m.Active())
	assert.Equal(t, 0, m.LastPlayer())

	require.NoError(t, m.Play(1, handOf(t, "S4 H4 D4 C4"), 13))
	assert.Equal(t, 1, m.LastPlayer())
}

func TestMachine_RoundEnd(t *testing.T) {
	t.Parallel()

	m := New(0)
	require.NoError(t, m.Play(0, handOf(t, "S3 H4 D5 C6 S7"), 0))
	assert.Equal(t, PhaseRoundEnd, m.Phase())
	assert.Equal(t, 0, m.Winner())

	assert.ErrorIs(t, m.Pass(0), apperrors.ErrRoundOver)
	assert.ErrorIs(t, m.Play(1, handOf(t, "S8"), 3), apperrors.ErrRoundOver)
}

func TestMachine_SeatOutOfRange(t *testing.T) {
	t.Parallel()

	m := New(0)
	assert.True(t, apperrors.IsFatal(m.Pass(5)))
	assert.True(t, apperrors.IsFatal(m.Play(-1, handOf(t, "S3"), 3)))
}
