package rule

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/doudizhu/internal/game/card"
)

var deckByID = func() map[string]card.Card {
	m := make(map[string]card.Card, card.DeckSize)
	for _, c := range card.NewDeck() {
		m[c.ID] = c
	}
	return m
}()

// cardsOf 按空格分隔的 ID 构造牌，例如 "S3 H3 BJ"
func cardsOf(t testing.TB, ids string) []card.Card {
	t.Helper()
	var cards []card.Card
	for _, id := range strings.Fields(ids) {
		c, ok := deckByID[id]
		require.True(t, ok, "unknown card id %q", id)
		cards = append(cards, c)
	}
	return cards
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ids    string
		typ    HandType
		key    card.Rank
		groups int
	}{
		{"empty is pass", "", Pass, 0, 0},
		{"single", "S7", Single, card.Rank7, 0},
		{"single joker", "RJ", Single, card.RankRedJoker, 0},
		{"pair", "S9 H9", Pair, card.Rank9, 0},
		{"jokers are not a pair", "BJ RJ", Rocket, RocketKeyRank, 0},
		{"mismatched two", "S9 H8", Invalid, 0, 0},
		{"trio", "SK HK DK", Trio, card.RankK, 0},
		{"trio with single", "S3 H3 D3 C4", TrioWithSingle, card.Rank3, 0},
		{"trio with joker", "S3 H3 D3 BJ", TrioWithSingle, card.Rank3, 0},
		{"bomb", "S5 H5 D5 C5", Bomb, card.Rank5, 0},
		{"two pairs", "S5 H5 D6 C6", Invalid, 0, 0},
		{"trio with pair", "S3 H3 D3 C4 S4", TrioWithPair, card.Rank3, 0},
		{"trio with jokers", "S3 H3 D3 BJ RJ", Invalid, 0, 0},
		{"straight", "S3 H4 D5 C6 S7", Straight, card.Rank7, 0},
		{"straight to ace", "S10 HJ DQ CK SA", Straight, card.RankA, 0},
		{"long straight", "S3 H4 D5 C6 S7 H8 D9 C10 SJ HQ DK CA", Straight, card.RankA, 0},
		{"two breaks straight", "SJ HQ DK CA S2", Invalid, 0, 0},
		{"two in low straight", "S2 H3 D4 C5 S6", Invalid, 0, 0},
		{"gap", "S3 H4 D5 C6 S8", Invalid, 0, 0},
		{"chain pairs", "S3 H3 D4 C4 S5 H5", PairStraight, card.Rank5, 0},
		{"chain pairs with two", "SK HK DA CA S2 H2", Invalid, 0, 0},
		{"two pairs only", "S3 H3 D4 C4", Invalid, 0, 0},
		{"plane", "S3 H3 D3 S4 H4 D4", Plane, card.Rank4, 2},
		{"plane of three", "S7 H7 D7 S8 H8 D8 S9 H9 D9", Plane, card.Rank9, 3},
		{"plane with singles", "S3 H3 D3 S4 H4 D4 S9 HK", PlaneWithSingles, card.Rank4, 2},
		{"plane with same-rank singles", "S3 H3 D3 S4 H4 D4 S9 H9", PlaneWithSingles, card.Rank4, 2},
		{"plane with pairs", "S3 H3 D3 S4 H4 D4 S9 H9 SK HK", PlaneWithPairs, card.Rank4, 2},
		{"plane pairs must differ", "S3 H3 D3 S4 H4 D4 S9 H9 D9 C9", Invalid, 0, 0},
		{"plane kicker from body rank", "S3 H3 D3 C3 S4 H4 D4 S9", Invalid, 0, 0},
		{"plane of twos", "SA HA DA S2 H2 D2", Invalid, 0, 0},
		{"non consecutive trios", "S3 H3 D3 S5 H5 D5", Invalid, 0, 0},
		{"longest run wins", "S3 H3 D3 S4 H4 D4 S5 H5 D5 S6 H6 D6", Plane, card.Rank6, 4},
		{"trio carried as singles", "S3 H3 D3 S4 H4 D4 S5 H5 D5 S7 H7 D7", PlaneWithSingles, card.Rank5, 3},
		{"four with two singles", "S6 H6 D6 C6 S3 HK", FourWithTwo, card.Rank6, 0},
		{"four with a pair", "S6 H6 D6 C6 S3 H3", FourWithTwo, card.Rank6, 0},
		{"four with jokers", "S6 H6 D6 C6 BJ RJ", FourWithTwo, card.Rank6, 0},
		{"four with two pairs", "S6 H6 D6 C6 S3 H3 S4 H4", Invalid, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cards := cardsOf(t, tt.ids)
			got := Classify(cards)
			assert.Equal(t, tt.typ, got.Type, "type %s", got.Type.Code())
			if tt.typ != Invalid {
				assert.Equal(t, tt.key, got.KeyRank)
				assert.Equal(t, tt.groups, got.Groups)
			}
			assert.Equal(t, len(cards), got.Length)
		})
	}
}

func TestClassify_OrderIndependent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"S3 H3 D3 S4 H4 D4 S9 HK",
		"S3 H4 D5 C6 S7 H8",
		"S6 H6 D6 C6 S3 HK",
		"S3 H3 D3 C4 S4",
		"BJ RJ",
	}
	r := rand.New(rand.NewPCG(7, 11))
	for _, in := range inputs {
		cards := cardsOf(t, in)
		want := Classify(cards)
		for range 10 {
			shuffled := append([]card.Card(nil), cards...)
			r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
			got := Classify(shuffled)
			assert.Equal(t, want.Type, got.Type, in)
			assert.Equal(t, want.KeyRank, got.KeyRank, in)
			assert.Equal(t, want.Groups, got.Groups, in)
		}
	}
}

func TestClassify_DoesNotMutate(t *testing.T) {
	t.Parallel()

	cards := cardsOf(t, "S7 H3 D5 C6 S4")
	before := append([]card.Card(nil), cards...)
	_ = Classify(cards)
	assert.Equal(t, before, cards)
}

func TestParseHand(t *testing.T) {
	t.Parallel()

	_, err := ParseHand(nil)
	assert.Error(t, err)

	_, err = ParseHand(cardsOf(t, "S3 H4"))
	assert.Error(t, err)

	hand, err := ParseHand(cardsOf(t, "S3 H3"))
	require.NoError(t, err)
	assert.Equal(t, Pair, hand.Type)
}

func TestHandTypeCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "king_bomb", Rocket.Code())
	assert.Equal(t, "chain_pairs", PairStraight.Code())
	assert.Equal(t, "triple", Trio.Code())
	assert.Equal(t, "invalid", HandType(100).Code())
	assert.Equal(t, "王炸", Rocket.String())
}
