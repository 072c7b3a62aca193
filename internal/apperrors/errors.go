package apperrors

import (
	"errors"
	"fmt"
)

// 错误码
const (
	ErrCodeInvalidCards = 1001 + iota
	ErrCodeCannotBeat
	ErrCodeNotYourTurn
	ErrCodeMustPlay
	ErrCodeBidTooLow
	ErrCodeBidOutOfRange
	ErrCodeNotBidding
	ErrCodeNotPlaying
	ErrCodeRoundOver
)

// GameError 可恢复的规则错误，引擎拒绝动作并保持状态不变
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrInvalidCards  = &GameError{Code: ErrCodeInvalidCards, Message: "无效的牌型"}
	ErrCannotBeat    = &GameError{Code: ErrCodeCannotBeat, Message: "您的牌大不过上家"}
	ErrNotYourTurn   = &GameError{Code: ErrCodeNotYourTurn, Message: "还没轮到您"}
	ErrMustPlay      = &GameError{Code: ErrCodeMustPlay, Message: "您必须出牌"}
	ErrBidTooLow     = &GameError{Code: ErrCodeBidTooLow, Message: "叫分必须高于当前最高分"}
	ErrBidOutOfRange = &GameError{Code: ErrCodeBidOutOfRange, Message: "最高只能叫3分"}
	ErrNotBidding    = &GameError{Code: ErrCodeNotBidding, Message: "当前不是叫地主阶段"}
	ErrNotPlaying    = &GameError{Code: ErrCodeNotPlaying, Message: "当前不是出牌阶段"}
	ErrRoundOver     = &GameError{Code: ErrCodeRoundOver, Message: "本局已结束"}
)

// InvariantError 结构性前置条件被破坏（调用方 bug），不属于规则错误
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: invariant violated: %s", e.Op, e.Detail)
}

// Invariant 创建 InvariantError
func Invariant(op, format string, args ...any) error {
	return &InvariantError{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// IsFatal 判断是否为结构性错误
func IsFatal(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}

// Code 返回错误码，非 GameError 返回 0
func Code(err error) int {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return 0
}
