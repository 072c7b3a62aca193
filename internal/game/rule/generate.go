package rule

import (
	"cmp"
	"slices"

	"github.com/palemoky/doudizhu/internal/game/card"
)

const rankSlots = int(card.RankRedJoker) + 1

// pick 每个点数选取的张数。花色不影响牌型，所以候选只按点数去重。
type pick [rankSlots]int

func (p pick) size() int {
	n := 0
	for _, c := range p {
		n += c
	}
	return n
}

// generator 基于点数直方图枚举候选牌组，每个候选都经过 Classify 复核
type generator struct {
	counts pick
	byRank [rankSlots][]card.Card
	total  int

	ref    ParsedHand
	follow bool

	seen map[pick]struct{}
	out  []ParsedHand
}

func newGenerator(hand []card.Card, ref ParsedHand) *generator {
	sorted := slices.Clone(hand)
	card.SortHand(sorted)

	g := &generator{
		total:  len(sorted),
		ref:    ref,
		follow: !ref.IsEmpty(),
		seen:   make(map[pick]struct{}),
	}
	for _, c := range sorted {
		g.counts[c.Rank]++
		g.byRank[c.Rank] = append(g.byRank[c.Rank], c)
	}
	return g
}

// emit 生成代表牌组（同点数取手牌中靠前的牌），识别牌型并按需过滤
func (g *generator) emit(p pick) {
	if _, ok := g.seen[p]; ok {
		return
	}
	g.seen[p] = struct{}{}

	cards := make([]card.Card, 0, p.size())
	for r := card.Rank3; r <= card.RankRedJoker; r++ {
		cards = append(cards, g.byRank[r][:p[r]]...)
	}
	hand := Classify(cards)
	if !hand.Valid() {
		return
	}
	if g.follow && !CanBeat(hand, g.ref) {
		return
	}
	g.out = append(g.out, hand)
}

// LegalPlays 枚举手牌中所有合法出牌。
// ref 为空时枚举所有牌型；否则只枚举与 ref 同牌型同长度且能大过 ref 的组合，
// 外加所有能大过 ref 的炸弹与王炸。
// 仅花色不同的组合视为同一手牌，只返回一个代表。结果按牌型、张数、点数排序。
func LegalPlays(hand []card.Card, ref ParsedHand) []ParsedHand {
	g := newGenerator(hand, ref)

	if !g.follow {
		g.all()
	} else {
		g.sameShape(ref)
		g.bombs()
		g.rocket()
	}

	slices.SortFunc(g.out, compareHands)
	return g.out
}

func (g *generator) all() {
	g.ofCount(1)
	g.ofCount(2)
	g.ofCount(3)
	g.trioWith(1)
	g.trioWith(2)
	for length := 5; length <= g.total; length++ {
		g.chains(1, length)
	}
	for pairs := 3; pairs*2 <= g.total; pairs++ {
		g.chains(2, pairs)
	}
	for k := 2; 3*k <= g.total; k++ {
		g.planes(k, 0)
		g.planes(k, 1)
		g.planes(k, 2)
	}
	g.fourWithTwo()
	g.bombs()
	g.rocket()
}

func (g *generator) sameShape(ref ParsedHand) {
	switch ref.Type {
	case Single:
		g.ofCount(1)
	case Pair:
		g.ofCount(2)
	case Trio:
		g.ofCount(3)
	case TrioWithSingle:
		g.trioWith(1)
	case TrioWithPair:
		g.trioWith(2)
	case Straight:
		g.chains(1, ref.Length)
	case PairStraight:
		g.chains(2, ref.Length/2)
	case Plane:
		g.planes(ref.Groups, 0)
	case PlaneWithSingles:
		g.planes(ref.Groups, 1)
	case PlaneWithPairs:
		g.planes(ref.Groups, 2)
	case FourWithTwo:
		g.fourWithTwo()
	}
}

// ofCount 单张、对子、三张
func (g *generator) ofCount(n int) {
	for r := card.Rank3; r <= card.RankRedJoker; r++ {
		if g.counts[r] >= n {
			var p pick
			p[r] = n
			g.emit(p)
		}
	}
}

// trioWith 三带一（kicker=1）或三带二（kicker=2）
func (g *generator) trioWith(kicker int) {
	for t := card.Rank3; t <= card.Rank2; t++ {
		if g.counts[t] < 3 {
			continue
		}
		for k := card.Rank3; k <= card.RankRedJoker; k++ {
			if k == t || g.counts[k] < kicker {
				continue
			}
			var p pick
			p[t] = 3
			p[k] = kicker
			g.emit(p)
		}
	}
}

// chains 顺子（width=1）或连对（width=2），length 为点数个数
func (g *generator) chains(width, length int) {
	for start := card.Rank3; int(start)+length-1 <= int(card.RankA); start++ {
		var p pick
		ok := true
		for r := start; r < start+card.Rank(length); r++ {
			if g.counts[r] < width {
				ok = false
				break
			}
			p[r] = width
		}
		if ok {
			g.emit(p)
		}
	}
}

// planes 飞机，kicker 为 0 不带、1 带单、2 带对
func (g *generator) planes(k, kicker int) {
	if (3+kicker)*k > g.total {
		return
	}
	for start := card.Rank3; int(start)+k-1 <= int(card.RankA); start++ {
		var body pick
		ok := true
		for r := start; r < start+card.Rank(k); r++ {
			if g.counts[r] < 3 {
				ok = false
				break
			}
			body[r] = 3
		}
		if !ok {
			continue
		}

		var kickerRanks []card.Rank
		for r := card.Rank3; r <= card.RankRedJoker; r++ {
			if body[r] == 0 && g.counts[r] > 0 {
				kickerRanks = append(kickerRanks, r)
			}
		}

		switch kicker {
		case 0:
			g.emit(body)
		case 1:
			g.chooseSingles(kickerRanks, 0, k, body)
		case 2:
			g.choosePairs(kickerRanks, 0, k, body)
		}
	}
}

// chooseSingles 从 ranks 中选 need 张牌（可同点数），每个多重集合只生成一次
func (g *generator) chooseSingles(ranks []card.Rank, from, need int, p pick) {
	if need == 0 {
		g.emit(p)
		return
	}
	for i := from; i < len(ranks); i++ {
		r := ranks[i]
		if p[r] >= g.counts[r] {
			continue
		}
		p[r]++
		g.chooseSingles(ranks, i, need-1, p)
		p[r]--
	}
}

// choosePairs 从 ranks 中选 need 个不同点数的对子
func (g *generator) choosePairs(ranks []card.Rank, from, need int, p pick) {
	if need == 0 {
		g.emit(p)
		return
	}
	for i := from; i < len(ranks); i++ {
		r := ranks[i]
		if g.counts[r] < 2 {
			continue
		}
		p[r] = 2
		g.choosePairs(ranks, i+1, need-1, p)
		p[r] = 0
	}
}

// fourWithTwo 四带两张不同单牌或四带一对
func (g *generator) fourWithTwo() {
	for q := card.Rank3; q <= card.Rank2; q++ {
		if g.counts[q] < 4 {
			continue
		}
		for a := card.Rank3; a <= card.RankRedJoker; a++ {
			if a == q || g.counts[a] == 0 {
				continue
			}
			if g.counts[a] >= 2 {
				var p pick
				p[q] = 4
				p[a] = 2
				g.emit(p)
			}
			for b := a + 1; b <= card.RankRedJoker; b++ {
				if b == q || g.counts[b] == 0 {
					continue
				}
				var p pick
				p[q] = 4
				p[a] = 1
				p[b] = 1
				g.emit(p)
			}
		}
	}
}

func (g *generator) bombs() {
	for r := card.Rank3; r <= card.Rank2; r++ {
		if g.counts[r] == 4 {
			var p pick
			p[r] = 4
			g.emit(p)
		}
	}
}

func (g *generator) rocket() {
	if g.counts[card.RankBlackJoker] > 0 && g.counts[card.RankRedJoker] > 0 {
		var p pick
		p[card.RankBlackJoker] = 1
		p[card.RankRedJoker] = 1
		g.emit(p)
	}
}

// compareHands 牌型、张数、关键点数依次比较，再按带牌从小到大
func compareHands(a, b ParsedHand) int {
	if c := cmp.Compare(a.Type, b.Type); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Length, b.Length); c != 0 {
		return c
	}
	if c := cmp.Compare(a.KeyRank, b.KeyRank); c != 0 {
		return c
	}
	for i := range a.Cards {
		if c := cmp.Compare(a.Cards[i].Rank, b.Cards[i].Rank); c != 0 {
			return c
		}
	}
	return 0
}

// Indices 返回 play 中每张牌在 hand 中的位置（升序）
func Indices(hand, play []card.Card) []int {
	pos := make(map[string]int, len(hand))
	for i, c := range hand {
		pos[c.ID] = i
	}
	idx := make([]int, 0, len(play))
	for _, c := range play {
		if i, ok := pos[c.ID]; ok {
			idx = append(idx, i)
		}
	}
	slices.Sort(idx)
	return idx
}
