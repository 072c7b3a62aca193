package card

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Suit 定义花色
type Suit int

// Rank 定义点数，数值越大牌越大
type Rank int

// CardColor 定义牌的颜色
type CardColor int

const (
	Black CardColor = iota
	Red
)

const (
	Spade   Suit = iota // 黑桃
	Heart               // 红心
	Club                // 梅花
	Diamond             // 方块
	Joker               // 王牌，无花色
)

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Heart:   "♥",
	Club:    "♣",
	Diamond: "♦",
	Joker:   "",
}

// suitCodes 用于生成牌的 ID
var suitCodes = map[Suit]string{
	Spade:   "S",
	Heart:   "H",
	Club:    "C",
	Diamond: "D",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

const (
	Rank3 Rank = iota + 3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ // Jack
	RankQ // Queen
	RankK // King
	RankA // Ace
	Rank2
	RankBlackJoker // 小王
	RankRedJoker   // 大王
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	Rank3:          "3",
	Rank4:          "4",
	Rank5:          "5",
	Rank6:          "6",
	Rank7:          "7",
	Rank8:          "8",
	Rank9:          "9",
	Rank10:         "10",
	RankJ:          "J",
	RankQ:          "Q",
	RankK:          "K",
	RankA:          "A",
	Rank2:          "2",
	RankBlackJoker: "B",
	RankRedJoker:   "R",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// IsJoker 是否为大小王
func (r Rank) IsJoker() bool {
	return r == RankBlackJoker || r == RankRedJoker
}

// charToRank 用于快速查找字符对应的 Rank
var charToRank = map[rune]Rank{
	'3': Rank3,
	'4': Rank4,
	'5': Rank5,
	'6': Rank6,
	'7': Rank7,
	'8': Rank8,
	'9': Rank9,
	'T': Rank10,
	'J': RankJ,
	'Q': RankQ,
	'K': RankK,
	'A': RankA,
	'2': Rank2,
	'B': RankBlackJoker,
	'R': RankRedJoker,
}

func RankFromChar(char rune) (Rank, error) {
	if rank, ok := charToRank[char]; ok {
		return rank, nil
	}
	return -1, fmt.Errorf("无法识别的点数: %c", char)
}

// Card 定义一张牌，创建后不可变。ID 在整副牌中唯一。
type Card struct {
	ID   string
	Suit Suit
	Rank Rank
}

// NewCard 按花色和点数创建一张牌
func NewCard(s Suit, r Rank) Card {
	return Card{ID: cardID(s, r), Suit: s, Rank: r}
}

func cardID(s Suit, r Rank) string {
	switch r {
	case RankBlackJoker:
		return "BJ"
	case RankRedJoker:
		return "RJ"
	}
	return suitCodes[s] + r.String()
}

// Color 红桃、方块和大王为红色
func (c Card) Color() CardColor {
	if c.Suit == Heart || c.Suit == Diamond || c.Rank == RankRedJoker {
		return Red
	}
	return Black
}

func (c Card) String() string {
	switch c.Rank {
	case RankBlackJoker:
		return "小王"
	case RankRedJoker:
		return "大王"
	}
	return c.Suit.String() + c.Rank.String()
}

// RankOf 返回用于比较的点数，大小王高于 2
func RankOf(c Card) int {
	return int(c.Rank)
}

const (
	DeckSize   = 54
	HandSize   = 17
	BottomSize = 3
	NumPlayers = 3
)

// Deck 定义一副牌
type Deck []Card

// NewDeck 返回按花色、点数排列的 54 张牌
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for s := Spade; s <= Diamond; s++ {
		for r := Rank3; r <= Rank2; r++ {
			deck = append(deck, NewCard(s, r))
		}
	}
	deck = append(deck,
		NewCard(Joker, RankBlackJoker),
		NewCard(Joker, RankRedJoker),
	)
	return deck
}

// Shuffle 使用全局随机源原地洗牌
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// ShuffleWith 使用给定随机源进行 Fisher–Yates 洗牌
func (d Deck) ShuffleWith(r *rand.Rand) {
	for i := len(d) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		d[i], d[j] = d[j], d[i]
	}
}

// Deal 把 54 张牌按固定区间分成三手牌和底牌：
// [0,17) [17,34) [34,51) 为三家手牌，[51,54) 为底牌。
func Deal(d Deck) (hands [NumPlayers][]Card, bottom []Card, err error) {
	if len(d) != DeckSize {
		return hands, nil, fmt.Errorf("牌数错误: 需要 %d 张, 实际 %d 张", DeckSize, len(d))
	}
	for i := range NumPlayers {
		hands[i] = make([]Card, HandSize)
		copy(hands[i], d[i*HandSize:(i+1)*HandSize])
		SortHand(hands[i])
	}
	bottom = make([]Card, BottomSize)
	copy(bottom, d[NumPlayers*HandSize:])
	return hands, bottom, nil
}
