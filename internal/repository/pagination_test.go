package repository

import (
	"math"
	"testing"
)

func TestNewPageWindow(t *testing.T) {
	cases := []struct {
		page, size int
		want       pageWindow
		wantOK     bool
	}{
		{page: 1, size: 10, want: pageWindow{limit: 10, offset: 0}, wantOK: true},
		{page: 3, size: 10, want: pageWindow{limit: 10, offset: 20}, wantOK: true},
		{page: 0, size: 5, want: pageWindow{limit: 5, offset: 0}, wantOK: true},
		{page: -2, size: 5, want: pageWindow{limit: 5, offset: 0}, wantOK: true},
		{page: 2, size: 0, wantOK: false},
		{page: math.MaxInt, size: 10, want: pageWindow{limit: 10, offset: math.MaxInt / 10 * 10}, wantOK: true},
	}
	for _, tc := range cases {
		got, ok := newPageWindow(tc.page, tc.size)
		if ok != tc.wantOK {
			t.Fatalf("page=%d size=%d ok want %v got %v", tc.page, tc.size, tc.wantOK, ok)
		}
		if got != tc.want {
			t.Fatalf("page=%d size=%d window want %+v got %+v", tc.page, tc.size, tc.want, got)
		}
	}
}

func TestNewPageWindowOffsetNeverNegative(t *testing.T) {
	for _, size := range []int{1, 7, 100} {
		window, ok := newPageWindow(math.MaxInt, size)
		if !ok || window.offset < 0 {
			t.Fatalf("size=%d offset overflowed: %+v", size, window)
		}
	}
}
