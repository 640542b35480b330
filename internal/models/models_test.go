package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNormalizeCard(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1111 2222 3333 4444", "1111222233334444"},
		{"1111-2222-3333-4444", "1111222233334444"},
		{"1111222233334444", "1111222233334444"},
		{"abc", ""},
		{"", ""},
		{"4x2", "42"},
	}
	for _, c := range cases {
		if got := NormalizeCard(c.in); got != c.want {
			t.Errorf("NormalizeCard(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

func TestRandomCardNumber(t *testing.T) {
	card := RandomCardNumber()
	if len(card) != CardNumberLength {
		t.Fatalf("card length=%d want %d", len(card), CardNumberLength)
	}
	for _, r := range card {
		if r < '0' || r > '9' {
			t.Fatalf("unexpected character %q in card %q", r, card)
		}
	}
	if RandomCardNumber() == card && RandomCardNumber() == card {
		t.Fatal("random cards should not repeat")
	}
}

func TestTrimName(t *testing.T) {
	if got := TrimName("  Alice  "); got != "Alice" {
		t.Fatalf("got %q", got)
	}
	if got := TrimName(""); got != "User" {
		t.Fatalf("empty name: got %q", got)
	}
	if got := TrimName("   "); got != "User" {
		t.Fatalf("blank name: got %q", got)
	}
	long := make([]rune, MaxNameLength+10)
	for i := range long {
		long[i] = 'a'
	}
	if got := TrimName(string(long)); len([]rune(got)) != MaxNameLength {
		t.Fatalf("long name not truncated: len=%d", len([]rune(got)))
	}
}

func TestRecentAndUpdateTruncate(t *testing.T) {
	a := Account{
		CardNumber: "1111222233334444",
		Balance:    decimal.NewFromInt(10),
		Currency:   Currency,
		CreatedAt:  time.Now(),
	}
	for i := 0; i < RecentLimit+20; i++ {
		a.Transactions = append(a.Transactions, Transaction{ID: "tx", Amount: decimal.NewFromInt(int64(i))})
	}

	recent := a.Recent(RecentLimit)
	if len(recent) != RecentLimit {
		t.Fatalf("recent len=%d want %d", len(recent), RecentLimit)
	}
	// most-recent-bearing: the last stored entry must survive truncation
	if !recent[len(recent)-1].Amount.Equal(decimal.NewFromInt(int64(RecentLimit + 19))) {
		t.Fatalf("unexpected tail entry: %+v", recent[len(recent)-1])
	}

	update := a.Update()
	if update.CardNumber != a.CardNumber || len(update.Transactions) != RecentLimit {
		t.Fatalf("unexpected update: %+v", update)
	}

	// Recent must return a copy, not a view into the account
	recent[0].ID = "mutated"
	if a.Transactions[len(a.Transactions)-RecentLimit].ID == "mutated" {
		t.Fatal("Recent leaked internal slice")
	}
}

func TestPublicOmitsHistory(t *testing.T) {
	a := Account{
		ID:           "id",
		Name:         "Alice",
		CardNumber:   "1111222233334444",
		Balance:      decimal.NewFromInt(5),
		Currency:     Currency,
		Transactions: []Transaction{{ID: "tx"}},
	}
	pub := a.Public()
	if pub.ID != a.ID || pub.Name != a.Name || pub.CardNumber != a.CardNumber {
		t.Fatalf("unexpected public view: %+v", pub)
	}
	if !pub.Balance.Equal(a.Balance) {
		t.Fatalf("balance mismatch: %s != %s", pub.Balance, a.Balance)
	}
}
