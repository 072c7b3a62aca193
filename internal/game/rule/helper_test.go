package rule

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/doudizhu/internal/game/card"
)

func TestFindSmallestBeatingCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		playerHand   string
		opponentHand string
		expected     string
	}{
		{
			name:       "Free lead: smallest single",
			playerHand: "SK H5 D9 C5",
			expected:   "H5",
		},
		{
			name:         "Single: Beat 3 with 4",
			playerHand:   "S4 H5",
			opponentHand: "D3",
			expected:     "S4",
		},
		{
			name:         "Single: Cannot beat 2 with Ace",
			playerHand:   "SA HK",
			opponentHand: "D2",
		},
		{
			name:         "Pair: Beat 3s with 4s",
			playerHand:   "S4 H4 C5",
			opponentHand: "D3 C3",
			expected:     "S4 H4",
		},
		{
			name:         "Trio: Beat 3s with 4s",
			playerHand:   "S4 H4 C4",
			opponentHand: "D3 C3 H3",
			expected:     "S4 H4 C4",
		},
		{
			name:         "TrioWithSingle: Beat 333+5 with 444+6",
			playerHand:   "S4 H4 C4 D6 S9",
			opponentHand: "D3 C3 H3 S5",
			expected:     "S4 H4 C4 D6",
		},
		{
			name:         "TrioWithPair: Beat 333+55 with 666+77",
			playerHand:   "S6 H6 C6 S7 H7 SK",
			opponentHand: "D3 C3 H3 S5 H5",
			expected:     "S6 H6 C6 S7 H7",
		},
		{
			name:         "Straight: Beat 3-7 with 4-8",
			playerHand:   "S4 H5 C6 D7 S8 S9",
			opponentHand: "D3 C4 H5 S6 D7",
			expected:     "S4 H5 C6 D7 S8",
		},
		{
			name:         "PairStraight: Beat 33-55 with 44-66",
			playerHand:   "S4 H4 S5 H5 S6 H6",
			opponentHand: "D3 C3 D4 C4 D5 C5",
			expected:     "S4 H4 S5 H5 S6 H6",
		},
		{
			name:         "Plane: Beat 333444 with 555666",
			playerHand:   "S5 H5 C5 S6 H6 C6 SK",
			opponentHand: "D3 C3 H3 D4 C4 H4",
			expected:     "S5 H5 C5 S6 H6 C6",
		},
		{
			name:         "Bomb: Beat straight with smallest bomb",
			playerHand:   "S9 H9 C9 D9 S5 H5 C5 D5",
			opponentHand: "D3 C4 H5 S6 D7",
			expected:     "S5 H5 C5 D5",
		},
		{
			name:         "Joker single before bomb",
			playerHand:   "S5 H5 C5 D5 BJ RJ",
			opponentHand: "SA",
			expected:     "BJ",
		},
		{
			name:         "Rocket: Beat bomb",
			playerHand:   "BJ RJ S3",
			opponentHand: "S2 H2 C2 D2",
			expected:     "BJ RJ",
		},
		{
			name:         "Cannot beat rocket",
			playerHand:   "S2 H2 C2 D2",
			opponentHand: "BJ RJ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opponent := Classify(cardsOf(t, tt.opponentHand))
			got := FindSmallestBeatingCards(cardsOf(t, tt.playerHand), opponent)
			if tt.expected == "" {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, strings.Fields(tt.expected), card.IDs(got))
		})
	}
}
