package usecase

import "testing"

func TestJPYToAUDCents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		jpy  int64
		want int64
	}{
		{name: "unknown price falls back to default", jpy: 0, want: 10000},
		{name: "negative treated as unknown", jpy: -5, want: 10000},
		{name: "1234 yen rounds to 123 dollars", jpy: 1234, want: 12300},
		{name: "1235 yen rounds half up", jpy: 1235, want: 12400},
		{name: "tiny price floors at one dollar", jpy: 4, want: 100},
		{name: "exact division", jpy: 20000, want: 200000},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := JPYToAUDCents(tt.jpy); got != tt.want {
				t.Fatalf("JPYToAUDCents(%d) got %d, want %d", tt.jpy, got, tt.want)
			}
		})
	}
}

func TestResolveAmountCents_overrideWins(t *testing.T) {
	t.Parallel()

	// 明示的な上書き価格は円換算より常に優先される
	if got := ResolveAmountCents(50, 2000); got != 5000 {
		t.Fatalf("got %d, want 5000", got)
	}
	if got := ResolveAmountCents(19.99, 2000); got != 1999 {
		t.Fatalf("got %d, want 1999", got)
	}
	if got := ResolveAmountCents(0, 2000); got != 20000 {
		t.Fatalf("got %d, want 20000", got)
	}
	if got := ResolveAmountCents(-1, 0); got != 10000 {
		t.Fatalf("got %d, want 10000", got)
	}
}
