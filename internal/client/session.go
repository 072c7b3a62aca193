// Package client 单机终端对局：一名真人对两名电脑，逐行读取命令
package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/palemoky/doudizhu/internal/apperrors"
	"github.com/palemoky/doudizhu/internal/game"
	"github.com/palemoky/doudizhu/internal/game/card"
	"github.com/palemoky/doudizhu/internal/logger"
	"github.com/palemoky/doudizhu/internal/storage"
	"github.com/palemoky/doudizhu/internal/ui/common"
)

// errQuit 玩家主动退出
var errQuit = errors.New("quit")

const helpText = `命令:
  bid N        叫 N 分 (1-3)
  pass / p     不叫 / 不出
  <牌>         出牌，可输入点数 (如 334455、10JQKA、JOKER) 或牌 ID (如 S3 H3)
  hint / h     提示
  order asc|desc  理牌顺序
  score        累计得分
  history      最近对局
  quit / q     退出`

// Options 会话参数
type Options struct {
	Mode    game.Mode
	AIDelay time.Duration // 电脑动作前的停顿，只影响显示节奏
}

// Session 一次终端会话，可连续进行多局
type Session struct {
	engine *game.Engine
	store  storage.Store
	in     *bufio.Scanner
	out    io.Writer
	opts   Options
	order  storage.CardOrder
}

// NewSession 创建会话并订阅引擎事件
func NewSession(engine *game.Engine, store storage.Store, in io.Reader, out io.Writer, opts Options) *Session {
	s := &Session{
		engine: engine,
		store:  store,
		in:     bufio.NewScanner(in),
		out:    out,
		opts:   opts,
		order:  storage.OrderAsc,
	}
	engine.Subscribe(s.onEvent)
	return s
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *Session) onEvent(ev game.Event) {
	switch ev.Kind {
	case game.EventDeal:
		return
	case game.EventLandlord:
		s.printf("%s  底牌: %s\n", ev.Message, common.RenderCards(ev.Cards))
	default:
		s.printf("%s\n", ev.Message)
	}
}

// Run 连续进行对局，直到输入结束或玩家退出
func (s *Session) Run(ctx context.Context) error {
	order, err := s.store.CardOrder(ctx)
	if err != nil {
		logger.LogError("读取理牌顺序失败: %v", err)
	} else {
		s.order = order
	}

	s.printf("%s\n%s\n", common.TitleStyle("斗地主"), helpText)
	for {
		err := s.PlayRound(ctx)
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		s.printf("回车开始下一局，q 退出\n")
		line, err := s.readLine()
		if err != nil {
			return nil
		}
		if line == "q" || line == "quit" {
			return nil
		}
	}
}

// PlayRound 进行一局，直到结算完成
func (s *Session) PlayRound(ctx context.Context) error {
	if _, err := s.engine.NewRound(s.opts.Mode); err != nil {
		return err
	}
	human := s.engine.HumanSeat()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		snap := s.engine.Snapshot()
		var actor int
		switch snap.Phase {
		case game.PhaseOver:
			return s.settle(ctx, snap)
		case game.PhaseBidding:
			actor = snap.Bidder
		case game.PhasePlaying:
			actor = snap.Active
		default:
			return apperrors.Invariant("play round", "unexpected phase %s", snap.Phase)
		}

		if actor != human {
			if err := s.wait(ctx); err != nil {
				return err
			}
			if _, err := s.engine.StepAI(); err != nil {
				return err
			}
			continue
		}

		s.show(snap)
		line, err := s.readLine()
		if err != nil {
			return err
		}
		if err := s.handle(ctx, snap, line); err != nil {
			if errors.Is(err, errQuit) || apperrors.IsFatal(err) {
				return err
			}
			s.printf("%s\n", common.ErrorStyle.Render(err.Error()))
		}
	}
}

func (s *Session) wait(ctx context.Context) error {
	if s.opts.AIDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.opts.AIDelay):
		return nil
	}
}

func (s *Session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// show 输出轮到真人时的局面
func (s *Session) show(snap game.Snapshot) {
	hand, err := s.engine.Hand(snap.HumanSeat)
	if err != nil {
		return
	}
	for seat := range card.NumPlayers {
		if seat == snap.HumanSeat {
			continue
		}
		s.printf("%s %s: %d张\n", common.RoleIcon(seat == snap.Landlord), seatName(seat, snap.HumanSeat), snap.HandSizes[seat])
	}
	s.printf("%s\n", common.RenderBottom(snap.Bottom, snap.Landlord >= 0))
	s.printf("%s\n", common.RenderHand(hand, snap.Landlord == snap.HumanSeat, s.order == storage.OrderDesc))

	switch snap.Phase {
	case game.PhaseBidding:
		s.printf("%s\n", common.PromptStyle.Render(fmt.Sprintf("当前最高 %d 分，请叫分 (bid N / pass)", snap.HighestBid)))
	case game.PhasePlaying:
		if !snap.LastPlay.IsEmpty() && snap.LastPlayer != snap.HumanSeat {
			s.printf("上家 %s: %s\n", seatName(snap.LastPlayer, snap.HumanSeat), common.RenderCards(snap.LastPlay.Cards))
			s.printf("%s\n", common.PromptStyle.Render("请出牌 (pass 不出，hint 提示)"))
		} else {
			s.printf("%s\n", common.PromptStyle.Render("请出牌"))
		}
	}
}

// handle 执行一条命令，规则错误原样返回给调用方显示
func (s *Session) handle(ctx context.Context, snap game.Snapshot, line string) error {
	human := snap.HumanSeat
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
		return nil
	case "help", "?":
		s.printf("%s\n", helpText)
		return nil
	case "quit", "q":
		return errQuit
	case "bid":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("叫分需要数字: %q", arg)
		}
		return s.engine.SubmitBid(human, n)
	case "pass", "p":
		if snap.Phase == game.PhaseBidding {
			return s.engine.PassBid(human)
		}
		return s.engine.SubmitPass(human)
	case "hint", "h":
		hint, err := s.engine.Hint(human)
		if err != nil {
			return err
		}
		if hint == nil {
			s.printf("没有能大过上家的牌\n")
		} else {
			s.printf("提示: %s  (%s)\n", common.RenderCards(hint), strings.Join(card.IDs(hint), " "))
		}
		return nil
	case "order":
		order, err := storage.ParseCardOrder(arg)
		if err != nil {
			return err
		}
		if err := s.store.SetCardOrder(ctx, order); err != nil {
			logger.LogError("保存理牌顺序失败: %v", err)
		}
		s.order = order
		return nil
	case "score":
		total, err := s.store.Total(ctx)
		if err != nil {
			return err
		}
		s.printf("累计得分: %d\n", total)
		return nil
	case "history":
		return s.history(ctx)
	case "play":
		return s.play(human, arg)
	}
	return s.play(human, line)
}

// play 解析选牌并出牌，先按牌 ID 匹配，再按点数匹配
func (s *Session) play(human int, input string) error {
	hand, err := s.engine.Hand(human)
	if err != nil {
		return err
	}
	cards, err := card.FindByIDs(hand, strings.Fields(strings.ToUpper(input)))
	if err != nil {
		cards, err = card.FindCardsInHand(hand, input)
		if err != nil {
			return err
		}
	}
	return s.engine.SubmitPlay(human, card.IDs(cards))
}

// settle 结算本局并保存
func (s *Session) settle(ctx context.Context, snap game.Snapshot) error {
	st := s.engine.CurrentScore()
	if st.Result == nil {
		return apperrors.Invariant("settle", "round over without result")
	}
	res := *st.Result
	won := res.Won(snap.HumanSeat)

	total, err := s.store.ApplyScore(ctx, res.Score, won)
	if err != nil {
		return fmt.Errorf("保存得分失败: %w", err)
	}

	rec := storage.RoundRecord{
		RoundID:  snap.RoundID,
		Mode:     snap.Mode.String(),
		Landlord: res.Landlord,
		Winner:   res.Winner,
		HumanWon: won,
		Score:    res.Score,
		Total:    total,
		PlayedAt: time.Now().Unix(),
	}
	if err := s.store.RecordRound(ctx, rec); err != nil {
		logger.LogError("保存对局记录失败: %v", err)
	}

	verdict := "你输了"
	if won {
		verdict = "你赢了"
	}
	var extra []string
	if res.Bombs > 0 {
		extra = append(extra, fmt.Sprintf("炸弹x%d", res.Bombs))
	}
	if res.Spring {
		extra = append(extra, "春天")
	}
	if res.AntiSpring {
		extra = append(extra, "反春天")
	}
	s.printf("%s\n", common.TitleStyle(fmt.Sprintf("%s! 底分 %d 倍数 %d 得分 %d %s", verdict, res.Base, res.Multiplier, res.Score, strings.Join(extra, " "))))
	s.printf("累计得分: %d\n", total)
	return nil
}

func (s *Session) history(ctx context.Context) error {
	rounds, err := s.store.RecentRounds(ctx, 10)
	if err != nil {
		return err
	}
	if len(rounds) == 0 {
		s.printf("暂无对局记录\n")
		return nil
	}
	for _, r := range rounds {
		result := "负"
		if r.HumanWon {
			result = "胜"
		}
		s.printf("%s  %-15s %s  %+d  累计 %d\n",
			time.Unix(r.PlayedAt, 0).Format("01-02 15:04"), r.Mode, result, signed(r.Score, r.HumanWon), r.Total)
	}
	return nil
}

func signed(score int, won bool) int {
	if won {
		return score
	}
	return -score
}

func seatName(seat, human int) string {
	if seat == human {
		return "你"
	}
	return fmt.Sprintf("电脑%d", seat)
}
