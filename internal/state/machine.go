package state

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
)

// 事件常量
const (
	EventConfirm  = "confirm"
	EventComplete = "complete"
	EventCancel   = "cancel"
)

// newBookingFSM 以当前状态构造预约状态机
// 允许的流转:
//   Pending   -> Confirmed (confirm)
//   Pending   -> Cancelled (cancel)
//   Confirmed -> Completed (complete)
//   Confirmed -> Cancelled (cancel)
// Completed / Cancelled 为终态
func newBookingFSM(current models.BookingStatus) *fsm.FSM {
	return fsm.NewFSM(
		string(current),
		fsm.Events{
			{Name: EventConfirm, Src: []string{string(models.StatusPending)}, Dst: string(models.StatusConfirmed)},
			{Name: EventComplete, Src: []string{string(models.StatusConfirmed)}, Dst: string(models.StatusCompleted)},
			{Name: EventCancel, Src: []string{string(models.StatusPending), string(models.StatusConfirmed)}, Dst: string(models.StatusCancelled)},
		},
		fsm.Callbacks{},
	)
}

// eventFor 目标状态对应的触发事件
func eventFor(to models.BookingStatus) (string, bool) {
	switch to {
	case models.StatusConfirmed:
		return EventConfirm, true
	case models.StatusCompleted:
		return EventComplete, true
	case models.StatusCancelled:
		return EventCancel, true
	default:
		return "", false
	}
}

// CanTransition 判断 from -> to 是否是允许的状态流转
func CanTransition(from, to models.BookingStatus) bool {
	event, ok := eventFor(to)
	if !ok {
		return false
	}
	return newBookingFSM(from).Can(event)
}

// Apply 应用状态流转，非法流转返回错误
func Apply(from, to models.BookingStatus) (models.BookingStatus, error) {
	event, ok := eventFor(to)
	if !ok {
		return from, fmt.Errorf("no transition targets status %s", to)
	}

	m := newBookingFSM(from)
	if err := m.Event(context.Background(), event); err != nil {
		return from, fmt.Errorf("transition %s -> %s: %w", from, to, err)
	}
	return models.BookingStatus(m.Current()), nil
}
