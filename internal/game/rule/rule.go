package rule

import (
	"slices"

	"github.com/palemoky/doudizhu/internal/game/card"
)

// HandType 定义牌型
type HandType int

const (
	Invalid        HandType = iota
	Pass                    // 不出（空牌）
	Single                  // 单张
	Pair                    // 对子
	Trio                    // 三张不带
	TrioWithSingle          // 三带一
	TrioWithPair            // 三带二

	Straight         // 顺子（5张或以上连续单张）
	PairStraight     // 连对（3对或以上）
	Plane            // 飞机不带翅膀（2个或以上连续三张）
	PlaneWithSingles // 飞机带单
	PlaneWithPairs   // 飞机带对

	FourWithTwo // 四带二（两张不同的单牌或一对）
	Bomb        // 炸弹（四张相同）
	Rocket      // 王炸（双王）
)

// RocketKeyRank 王炸的比较值，高于任何点数
const RocketKeyRank card.Rank = 999

// handTypeNames 牌型名称映射表
var handTypeNames = map[HandType]string{
	Pass:             "不出",
	Single:           "单张",
	Pair:             "对子",
	Trio:             "三张",
	TrioWithSingle:   "三带一",
	TrioWithPair:     "三带二",
	Straight:         "顺子",
	PairStraight:     "连对",
	Plane:            "飞机",
	PlaneWithSingles: "飞机带单",
	PlaneWithPairs:   "飞机带对",
	FourWithTwo:      "四带二",
	Bomb:             "炸弹",
	Rocket:           "王炸",
}

// handTypeCodes 对外暴露的牌型代码
var handTypeCodes = map[HandType]string{
	Invalid:          "invalid",
	Pass:             "pass",
	Single:           "single",
	Pair:             "pair",
	Trio:             "triple",
	TrioWithSingle:   "triple_with_single",
	TrioWithPair:     "triple_with_pair",
	Straight:         "straight",
	PairStraight:     "chain_pairs",
	Plane:            "plane",
	PlaneWithSingles: "plane_with_single",
	PlaneWithPairs:   "plane_with_pair",
	FourWithTwo:      "four_with_two",
	Bomb:             "bomb",
	Rocket:           "king_bomb",
}

func (h HandType) String() string {
	if name, ok := handTypeNames[h]; ok {
		return name
	}
	return "无效"
}

// Code 返回牌型代码，例如 triple_with_single
func (h HandType) Code() string {
	if code, ok := handTypeCodes[h]; ok {
		return code
	}
	return "invalid"
}

// IsPlane 是否属于飞机系列
func (h HandType) IsPlane() bool {
	return h == Plane || h == PlaneWithSingles || h == PlaneWithPairs
}

// IsBomb 炸弹或王炸
func (h HandType) IsBomb() bool {
	return h == Bomb || h == Rocket
}

// ParsedHand 解析后的手牌，用于比较
type ParsedHand struct {
	Type    HandType
	KeyRank card.Rank   // 决定大小的关键牌的点数（单/对/三张的点数，或连牌的最高点）
	Length  int         // 牌的张数
	Groups  int         // 飞机中三张的组数，其他牌型为 0
	Cards   []card.Card // 这手牌包含的卡牌，按点数升序
}

// IsEmpty 没有牌（新一轮可以自由出牌）
func (p ParsedHand) IsEmpty() bool {
	return len(p.Cards) == 0
}

// Valid 是否为合法牌型（不含不出）
func (p ParsedHand) Valid() bool {
	return p.Type != Invalid && p.Type != Pass
}

// HandAnalysis 对一手牌进行预分析，统计不同点数的牌出现了几次
type HandAnalysis struct {
	counts map[card.Rank]int // 每种点数牌的数量
	// 为了方便，提前将不同数量的牌分组
	fours []card.Rank
	trios []card.Rank
	pairs []card.Rank
	ones  []card.Rank
}

// analyzeCards 分析手牌，返回一个包含所有统计信息的结构
func analyzeCards(cards []card.Card) HandAnalysis {
	analysis := HandAnalysis{
		counts: card.RankCounts(cards),
	}

	for r, count := range analysis.counts {
		switch count {
		case 4:
			analysis.fours = append(analysis.fours, r)
		case 3:
			analysis.trios = append(analysis.trios, r)
		case 2:
			analysis.pairs = append(analysis.pairs, r)
		case 1:
			analysis.ones = append(analysis.ones, r)
		}
	}

	// 对结果进行排序，方便后续判断连续性
	slices.Sort(analysis.fours)
	slices.Sort(analysis.trios)
	slices.Sort(analysis.pairs)
	slices.Sort(analysis.ones)

	return analysis
}

// isContinuous 检查给定的点数切片是否连续，并且不能包含 2 和大小王
func isContinuous(ranks []card.Rank) bool {
	if len(ranks) == 0 {
		return false
	}
	for i, r := range ranks {
		if r >= card.Rank2 { // 顺子、连对、飞机不能包含2和王
			return false
		}
		if i > 0 && ranks[i-1]+1 != r {
			return false
		}
	}
	return true
}

// shape 牌型识别的中间结果
type shape struct {
	typ    HandType
	key    card.Rank
	groups int
}

// classifier 按优先级排列的牌型识别函数，第一个命中的生效
var classifiers = []func(HandAnalysis, int) (shape, bool){
	isSimpleType,   // 单、对、三
	isRocket,       // 王炸
	isFourCards,    // 炸弹、三带一
	isTrioWithPair, // 三带二
	isStraight,     // 顺子
	isPairStraight, // 连对
	isPlane,        // 飞机
	isFourWithTwo,  // 四带二
}

// Classify 识别一组牌的牌型。只依赖点数的多重集合，不修改输入。
func Classify(cards []card.Card) ParsedHand {
	if len(cards) == 0 {
		return ParsedHand{Type: Pass}
	}

	sorted := slices.Clone(cards)
	card.SortHand(sorted)
	hand := ParsedHand{Type: Invalid, Length: len(cards), Cards: sorted}

	analysis := analyzeCards(cards)
	for _, check := range classifiers {
		if s, ok := check(analysis, len(cards)); ok {
			hand.Type = s.typ
			hand.KeyRank = s.key
			hand.Groups = s.groups
			return hand
		}
	}
	return hand
}

// ParseHand 解析要出的牌，空牌和无效牌型返回错误
func ParseHand(cards []card.Card) (ParsedHand, error) {
	hand := Classify(cards)
	if !hand.Valid() {
		return hand, errInvalidShape(hand)
	}
	return hand, nil
}

func isSimpleType(a HandAnalysis, n int) (shape, bool) {
	if n > 3 || len(a.counts) != 1 {
		return shape{}, false
	}
	var r card.Rank
	for rank := range a.counts {
		r = rank
	}
	switch n {
	case 1:
		return shape{typ: Single, key: r}, true
	case 2:
		return shape{typ: Pair, key: r}, true
	default:
		return shape{typ: Trio, key: r}, true
	}
}

func isRocket(a HandAnalysis, n int) (shape, bool) {
	if n == 2 && a.counts[card.RankBlackJoker] == 1 && a.counts[card.RankRedJoker] == 1 {
		return shape{typ: Rocket, key: RocketKeyRank}, true
	}
	return shape{}, false
}

func isFourCards(a HandAnalysis, n int) (shape, bool) {
	if n != 4 {
		return shape{}, false
	}
	if len(a.fours) == 1 {
		return shape{typ: Bomb, key: a.fours[0]}, true
	}
	if len(a.trios) == 1 && len(a.ones) == 1 {
		return shape{typ: TrioWithSingle, key: a.trios[0]}, true
	}
	return shape{}, false
}

func isTrioWithPair(a HandAnalysis, n int) (shape, bool) {
	if n == 5 && len(a.trios) == 1 && len(a.pairs) == 1 {
		return shape{typ: TrioWithPair, key: a.trios[0]}, true
	}
	return shape{}, false
}

func isStraight(a HandAnalysis, n int) (shape, bool) {
	if n < 5 || len(a.ones) != n || !isContinuous(a.ones) {
		return shape{}, false
	}
	return shape{typ: Straight, key: a.ones[n-1]}, true
}

func isPairStraight(a HandAnalysis, n int) (shape, bool) {
	if n < 6 || n%2 != 0 || len(a.pairs) != n/2 || !isContinuous(a.pairs) {
		return shape{}, false
	}
	return shape{typ: PairStraight, key: a.pairs[len(a.pairs)-1]}, true
}

func isFourWithTwo(a HandAnalysis, n int) (shape, bool) {
	if n != 6 || len(a.fours) != 1 {
		return shape{}, false
	}
	if len(a.ones) == 2 || len(a.pairs) == 1 {
		return shape{typ: FourWithTwo, key: a.fours[0]}, true
	}
	return shape{}, false
}

// isPlane 识别飞机系列。候选为所有由 >=3 张的点数组成的连续区间（长度 >=2），
// 组数多的优先，同组数时最高点大的优先。
func isPlane(a HandAnalysis, n int) (shape, bool) {
	if n < 6 {
		return shape{}, false
	}

	var bodyRanks []card.Rank
	for r, count := range a.counts {
		if count >= 3 && r < card.Rank2 {
			bodyRanks = append(bodyRanks, r)
		}
	}
	slices.Sort(bodyRanks)

	runs := continuousRuns(bodyRanks)
	longest := 0
	for _, run := range runs {
		longest = max(longest, len(run))
	}

	for k := longest; k >= 2; k-- {
		if n != 3*k && n != 4*k && n != 5*k {
			continue
		}
		for i := len(runs) - 1; i >= 0; i-- {
			run := runs[i]
			for end := len(run); end-k >= 0; end-- {
				if s, ok := matchPlaneWindow(a, n, run[end-k:end]); ok {
					return s, true
				}
			}
		}
	}
	return shape{}, false
}

// matchPlaneWindow 以 window 作为机身，检查剩余牌能否构成对应的翅膀
func matchPlaneWindow(a HandAnalysis, n int, window []card.Rank) (shape, bool) {
	k := len(window)
	s := shape{key: window[k-1], groups: k}

	// 机身点数的第四张会留在剩余牌里，而翅膀不能与机身同点
	for _, r := range window {
		if a.counts[r] != 3 {
			return shape{}, false
		}
	}

	switch n - 3*k {
	case 0:
		s.typ = Plane
		return s, true
	case k:
		s.typ = PlaneWithSingles
		return s, true
	case 2 * k:
		kickerRanks := 0
		for r, count := range a.counts {
			if slices.Contains(window, r) {
				continue
			}
			if count != 2 {
				return shape{}, false
			}
			kickerRanks++
		}
		if kickerRanks == k {
			s.typ = PlaneWithPairs
			return s, true
		}
	}
	return shape{}, false
}

// continuousRuns 把有序点数切分成长度 >=2 的最长连续段
func continuousRuns(ranks []card.Rank) [][]card.Rank {
	var runs [][]card.Rank
	start := 0
	for i := 1; i <= len(ranks); i++ {
		if i < len(ranks) && ranks[i] == ranks[i-1]+1 {
			continue
		}
		if i-start >= 2 {
			runs = append(runs, ranks[start:i])
		}
		start = i
	}
	return runs
}
