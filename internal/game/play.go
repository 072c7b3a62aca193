package game

import (
	"fmt"

	"github.com/palemoky/doudizhu/internal/apperrors"
	"github.com/palemoky/doudizhu/internal/game/ai"
	"github.com/palemoky/doudizhu/internal/game/card"
	"github.com/palemoky/doudizhu/internal/game/rule"
	"github.com/palemoky/doudizhu/internal/game/score"
	"github.com/palemoky/doudizhu/internal/logger"
)

// SubmitPlay player 打出 ids 指定的牌
func (e *Engine) SubmitPlay(player int, ids []string) error {
	return e.do(func() error {
		return e.submitPlay(player, ids)
	})
}

func (e *Engine) submitPlay(player int, ids []string) error {
	if err := e.checkPlaying("submit play", player); err != nil {
		return err
	}
	if player != e.turn.Active() {
		return apperrors.ErrNotYourTurn
	}

	cards, err := card.FindByIDs(e.hands[player], ids)
	if err != nil {
		return apperrors.Invariant("submit play", "%v", err)
	}
	play := rule.Classify(cards)
	if err := e.turn.Play(player, play, len(e.hands[player])-len(cards)); err != nil {
		return err
	}

	e.hands[player] = card.RemoveCards(e.hands[player], cards)
	e.tracker.Record(player, play)
	e.emit(EventPlay, player, play.Cards, len(e.hands[player]),
		fmt.Sprintf("%s出了%s: %s", e.seatName(player), play.Type, card.FormatCards(play.Cards)))

	if e.turn.Winner() >= 0 {
		e.finish()
	}
	return nil
}

// SubmitPass player 不出
func (e *Engine) SubmitPass(player int) error {
	return e.do(func() error {
		return e.submitPass(player)
	})
}

func (e *Engine) submitPass(player int) error {
	if err := e.checkPlaying("submit pass", player); err != nil {
		return err
	}
	if err := e.turn.Pass(player); err != nil {
		return err
	}

	e.emit(EventPass, player, nil, 0, fmt.Sprintf("%s不出", e.seatName(player)))
	if e.turn.LastPlay().IsEmpty() {
		leader := e.turn.Active()
		e.emit(EventTrickReset, leader, nil, 0, fmt.Sprintf("其他玩家均不出，轮到%s任意出牌", e.seatName(leader)))
	}
	return nil
}

func (e *Engine) checkPlaying(op string, player int) error {
	if err := checkSeat(op, player); err != nil {
		return err
	}
	switch e.phase {
	case PhasePlaying:
		return nil
	case PhaseOver:
		return apperrors.ErrRoundOver
	}
	return apperrors.ErrNotPlaying
}

func (e *Engine) finish() {
	winner := e.turn.Winner()
	r := score.Settle(e.tracker, winner, e.highestBid)
	e.result = &r
	e.phase = PhaseOver

	logger.LogInfo("Round %s over: winner=%d landlord=%d bombs=%d spring=%v anti_spring=%v score=%d",
		e.roundID, winner, r.Landlord, r.Bombs, r.Spring, r.AntiSpring, r.Score)
	e.emit(EventRoundEnd, winner, nil, r.Score, fmt.Sprintf("%s出完了牌，本局得分 %d", e.seatName(winner), r.Score))
}

// reference seat 需要压过的牌，自由出牌时为空
func (e *Engine) reference(seat int) rule.ParsedHand {
	if e.turn == nil || e.turn.LastPlayer() == seat {
		return rule.ParsedHand{}
	}
	return e.turn.LastPlay()
}

// LegalPlays seat 当前能出的所有牌
func (e *Engine) LegalPlays(seat int) ([]rule.ParsedHand, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkPlaying("legal plays", seat); err != nil {
		return nil, err
	}
	return rule.LegalPlays(e.hands[seat], e.reference(seat)), nil
}

// Hint 能压过桌面的最小牌，没有时返回 nil
func (e *Engine) Hint(seat int) ([]card.Card, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkPlaying("hint", seat); err != nil {
		return nil, err
	}
	return rule.FindSmallestBeatingCards(e.hands[seat], e.reference(seat)), nil
}

// ChooseBid 电脑规则为 seat 给出的叫分
func (e *Engine) ChooseBid(seat int) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := checkSeat("choose bid", seat); err != nil {
		return 0, err
	}
	if e.phase != PhaseBidding {
		return 0, apperrors.ErrNotBidding
	}
	return ai.ChooseBid(e.hands[seat], e.bid.Highest()), nil
}

// ChoosePlay 电脑规则为 seat 选出的牌，nil 表示不出
func (e *Engine) ChoosePlay(seat int) ([]card.Card, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkPlaying("choose play", seat); err != nil {
		return nil, err
	}
	return ai.ChoosePlay(e.hands[seat], e.reference(seat)), nil
}

// StepAI 若轮到电脑，则替它叫分或出牌一次。轮到真人或本局已结束时返回 false。
func (e *Engine) StepAI() (bool, error) {
	acted := false
	err := e.do(func() error {
		switch e.phase {
		case PhaseBidding:
			seat := e.bid.Current()
			if seat == e.opts.HumanSeat {
				return nil
			}
			acted = true
			return e.submitBid(seat, ai.ChooseBid(e.hands[seat], e.bid.Highest()))
		case PhasePlaying:
			seat := e.turn.Active()
			if seat == e.opts.HumanSeat {
				return nil
			}
			acted = true
			play := ai.ChoosePlay(e.hands[seat], e.reference(seat))
			if play == nil {
				return e.submitPass(seat)
			}
			return e.submitPlay(seat, card.IDs(play))
		}
		return nil
	})
	return acted, err
}

// ScoreState 结算相关的状态，Result 在本局结束后才有值
type ScoreState struct {
	Tracker    score.Tracker
	HighestBid int
	Result     *score.Result
}

// CurrentScore 返回结算状态快照
func (e *Engine) CurrentScore() ScoreState {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := ScoreState{Tracker: e.tracker, HighestBid: e.highestBid}
	if e.result != nil {
		r := *e.result
		s.Result = &r
	}
	return s
}
