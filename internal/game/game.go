package game

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/doudizhu/internal/apperrors"
	"github.com/palemoky/doudizhu/internal/game/ai"
	"github.com/palemoky/doudizhu/internal/game/bidding"
	"github.com/palemoky/doudizhu/internal/game/card"
	"github.com/palemoky/doudizhu/internal/game/rule"
	"github.com/palemoky/doudizhu/internal/game/score"
	"github.com/palemoky/doudizhu/internal/game/turn"
	"github.com/palemoky/doudizhu/internal/logger"
)

// Engine 一局斗地主的全部状态：手牌、叫分、出牌轮转与结算。
// 所有操作互斥执行，被拒绝的操作不会改变任何状态。
type Engine struct {
	mu sync.Mutex

	opts Options
	rng  *rand.Rand

	roundID string
	mode    Mode
	phase   Phase
	redeals int

	hands  [card.NumPlayers][]card.Card
	bottom []card.Card

	bid        *bidding.Machine
	landlord   int
	highestBid int

	turn    *turn.Machine
	tracker score.Tracker
	result  *score.Result

	events      []Event
	pending     []Event
	subscribers []Subscriber
}

// Deal 开局后的手牌与底牌
type Deal struct {
	Hands  [card.NumPlayers][]card.Card
	Bottom []card.Card
}

// New 创建引擎，随后调用 NewRound 开局
func New(opts Options) *Engine {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if opts.MaxRedeals <= 0 {
		opts.MaxRedeals = 10
	}
	return &Engine{
		opts:     opts,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		landlord: -1,
	}
}

// NewRound 洗牌发牌并按 mode 进入叫分或出牌阶段，丢弃上一局的状态
func (e *Engine) NewRound(mode Mode) (Deal, error) {
	var d Deal
	err := e.do(func() error {
		if _, ok := modeNames[mode]; !ok {
			return apperrors.Invariant("new round", "unknown mode %d", mode)
		}

		e.roundID = uuid.NewString()
		e.mode = mode
		e.redeals = 0
		e.events = nil
		e.result = nil
		e.turn = nil
		e.bid = nil
		e.landlord = -1
		e.highestBid = 0
		logger.LogInfo("Round %s started, mode=%s", e.roundID, mode)

		if err := e.deal(); err != nil {
			return err
		}

		switch mode {
		case ModeStandard:
			e.startBidding()
		case ModeRandomLandlord:
			e.setLandlord(e.rng.IntN(card.NumPlayers))
		case ModeFastAutoBid:
			e.startBidding()
			if err := e.autoBid(); err != nil {
				return err
			}
		case ModeNoBid:
			e.tracker = score.NewTracker(-1)
			e.turn = turn.New(0)
			e.phase = PhasePlaying
		}

		d = e.dealView()
		return nil
	})
	return d, err
}

// deal 洗牌并按固定区间发牌，校验 54 张牌不重不漏
func (e *Engine) deal() error {
	deck := card.NewDeck()
	deck.ShuffleWith(e.rng)
	hands, bottom, err := card.Deal(deck)
	if err != nil {
		return apperrors.Invariant("deal", "%v", err)
	}
	e.hands = hands
	e.bottom = bottom
	if err := e.checkDeck(); err != nil {
		return err
	}
	e.emit(EventDeal, -1, nil, 0, "发牌完成")
	return nil
}

// checkDeck 三家手牌、底牌（未发给地主时）和已出的牌合起来必须正好是一副牌
func (e *Engine) checkDeck() error {
	seen := make(map[string]struct{}, card.DeckSize)
	add := func(cards []card.Card) error {
		for _, c := range cards {
			if _, dup := seen[c.ID]; dup {
				return apperrors.Invariant("deal", "duplicate card %s", c.ID)
			}
			seen[c.ID] = struct{}{}
		}
		return nil
	}
	for _, h := range e.hands {
		if err := add(h); err != nil {
			return err
		}
	}
	if err := add(e.bottom); err != nil {
		return err
	}
	if len(seen) != card.DeckSize {
		return apperrors.Invariant("deal", "expected %d cards, got %d", card.DeckSize, len(seen))
	}
	return nil
}

func (e *Engine) startBidding() {
	e.bid = bidding.New(0, e.opts.Policy, e.rng)
	e.phase = PhaseBidding
}

// SubmitBid player 叫 amount 分，0 表示不叫
func (e *Engine) SubmitBid(player, amount int) error {
	return e.do(func() error {
		return e.submitBid(player, amount)
	})
}

// PassBid 不叫
func (e *Engine) PassBid(player int) error {
	return e.SubmitBid(player, 0)
}

func (e *Engine) submitBid(player, amount int) error {
	if e.phase != PhaseBidding {
		return apperrors.ErrNotBidding
	}
	if err := e.bid.Bid(player, amount); err != nil {
		return err
	}

	msg := fmt.Sprintf("%s叫了%d分", e.seatName(player), amount)
	if amount == 0 {
		msg = fmt.Sprintf("%s不叫", e.seatName(player))
	}
	e.emit(EventBid, player, nil, amount, msg)
	return e.afterBid()
}

func (e *Engine) afterBid() error {
	switch e.bid.State() {
	case bidding.StateResolved:
		e.setLandlord(e.bid.Landlord())
	case bidding.StateRedeal:
		return e.redeal()
	}
	return nil
}

// redeal 无人叫分时重新发牌；超过上限后随机指定地主
func (e *Engine) redeal() error {
	if e.redeals >= e.opts.MaxRedeals {
		logger.LogInfo("Round %s: %d redeals reached, picking a random landlord", e.roundID, e.redeals)
		e.bid.ForceRandom()
		e.setLandlord(e.bid.Landlord())
		return nil
	}

	e.redeals++
	logger.LogInfo("Round %s: nobody bid, redeal #%d", e.roundID, e.redeals)
	e.emit(EventRedeal, -1, nil, e.redeals, "无人叫地主，重新发牌")
	if err := e.deal(); err != nil {
		return err
	}
	e.startBidding()
	return nil
}

// AutoBid 用电脑规则替所有尚未叫分的玩家叫分，直到决出地主
func (e *Engine) AutoBid() error {
	return e.do(func() error {
		if e.phase != PhaseBidding {
			return apperrors.ErrNotBidding
		}
		return e.autoBid()
	})
}

func (e *Engine) autoBid() error {
	for e.phase == PhaseBidding {
		seat := e.bid.Current()
		if err := e.submitBid(seat, ai.ChooseBid(e.hands[seat], e.bid.Highest())); err != nil {
			return err
		}
	}
	return nil
}

// setLandlord 底牌交给地主，地主先出牌
func (e *Engine) setLandlord(seat int) {
	e.landlord = seat
	if e.bid != nil {
		e.highestBid = e.bid.Highest()
	}

	e.hands[seat] = append(e.hands[seat], e.bottom...)
	card.SortHand(e.hands[seat])

	e.tracker = score.NewTracker(seat)
	e.turn = turn.New(seat)
	e.phase = PhasePlaying

	logger.LogInfo("Round %s: landlord is seat %d, highest bid %d", e.roundID, seat, e.highestBid)
	e.emit(EventLandlord, seat, e.bottom, e.highestBid, fmt.Sprintf("%s成为地主", e.seatName(seat)))
}

func (e *Engine) seatName(seat int) string {
	if seat == e.opts.HumanSeat {
		return "你"
	}
	return fmt.Sprintf("电脑%d", seat)
}

func (e *Engine) dealView() Deal {
	var d Deal
	for i, h := range e.hands {
		d.Hands[i] = cloneCards(h)
	}
	d.Bottom = cloneCards(e.bottom)
	return d
}

// RoundID 当前局的 ID
func (e *Engine) RoundID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roundID
}

// HumanSeat 真人玩家座位
func (e *Engine) HumanSeat() int {
	return e.opts.HumanSeat
}

// Hand 返回 seat 手牌的副本
func (e *Engine) Hand(seat int) ([]card.Card, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := checkSeat("hand", seat); err != nil {
		return nil, err
	}
	return cloneCards(e.hands[seat]), nil
}

func checkSeat(op string, seat int) error {
	if seat < 0 || seat >= card.NumPlayers {
		return apperrors.Invariant(op, "seat %d out of range", seat)
	}
	return nil
}

// Snapshot 供显示层读取的只读状态
type Snapshot struct {
	RoundID    string
	Mode       Mode
	Phase      Phase
	HumanSeat  int
	Redeals    int
	Landlord   int
	HighestBid int
	Bids       [card.NumPlayers]int
	Bidder     int // 叫分阶段当前叫分者，否则为 -1
	Active     int // 出牌阶段当前出牌者，否则为 -1
	LastPlay   rule.ParsedHand
	LastPlayer int
	Passes     int
	HandSizes  [card.NumPlayers]int
	Bottom     []card.Card
	Winner     int
}

// Snapshot 返回当前状态快照
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		RoundID:    e.roundID,
		Mode:       e.mode,
		Phase:      e.phase,
		HumanSeat:  e.opts.HumanSeat,
		Redeals:    e.redeals,
		Landlord:   e.landlord,
		HighestBid: e.highestBid,
		Bidder:     -1,
		Active:     -1,
		LastPlayer: -1,
		Winner:     -1,
		Bottom:     cloneCards(e.bottom),
	}
	for i, h := range e.hands {
		s.HandSizes[i] = len(h)
	}
	if e.bid != nil {
		s.Bids = e.bid.Bids()
		if e.phase == PhaseBidding {
			s.Bidder = e.bid.Current()
			s.HighestBid = e.bid.Highest()
		}
	}
	if e.turn != nil {
		if e.phase == PhasePlaying {
			s.Active = e.turn.Active()
		}
		s.LastPlay = e.turn.LastPlay()
		s.LastPlayer = e.turn.LastPlayer()
		s.Passes = e.turn.Passes()
		s.Winner = e.turn.Winner()
	}
	return s
}
