package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/invest"
)

func TestSetting(t *testing.T) {
	t.Setenv("INVEST_TEST_SETTING", "from-env")

	tests := []struct {
		name  string
		value string
		env   string
		want  string
	}{
		{name: "flag wins", value: "from-flag", env: "INVEST_TEST_SETTING", want: "from-flag"},
		{name: "env", value: "", env: "INVEST_TEST_SETTING", want: "from-env"},
		{name: "blank flag", value: "  ", env: "INVEST_TEST_SETTING", want: "from-env"},
		{name: "default", value: "", env: "INVEST_TEST_UNSET", want: "def"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := setting(&tt.value, tt.env, "def"); got != tt.want {
				t.Errorf("setting() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuoteGateway(t *testing.T) {
	none, finnhub, eodhd, bad := "none", "finnhub", "eodhd", "yahoo"
	t.Setenv("FINNHUB_API_KEY", "")
	t.Setenv("EODHD_API_KEY", "")
	defer func(p *string) { quotesProvider = p }(quotesProvider)

	quotesProvider = &none
	if _, err := quoteGateway(); !errors.Is(err, errNoQuotes) {
		t.Errorf("quoteGateway(none) error = %v, want errNoQuotes", err)
	}
	quotesProvider = &finnhub
	if _, err := quoteGateway(); err == nil {
		t.Error("quoteGateway(finnhub) without a key returned no error")
	}
	quotesProvider = &eodhd
	if _, err := quoteGateway(); err == nil {
		t.Error("quoteGateway(eodhd) without a key returned no error")
	}
	t.Setenv("EODHD_API_KEY", "demo")
	if gw, err := quoteGateway(); err != nil || gw == nil {
		t.Errorf("quoteGateway(eodhd) = %v, %v", gw, err)
	}
	quotesProvider = &bad
	if _, err := quoteGateway(); err == nil {
		t.Error("quoteGateway(yahoo) returned no error")
	}
}

func TestParseTrade(t *testing.T) {
	tr, err := parseTrade("2024-3-1", "187.5", "2.5")
	if err != nil {
		t.Fatalf("parseTrade() error: %v", err)
	}
	if !tr.Price.Equal(invest.M(187.5)) || !tr.Shares.Equal(invest.Q(2.5)) || tr.Date != "2024-3-1" {
		t.Errorf("parseTrade() = %+v", tr)
	}

	for _, args := range [][2]string{{"abc", "1"}, {"1", "ten"}, {"", "1"}} {
		if _, err := parseTrade("2024-01-01", args[0], args[1]); err == nil {
			t.Errorf("parseTrade(%q, %q) returned no error", args[0], args[1])
		}
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" y ", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yep\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if got := confirm(strings.NewReader(tt.input), &out, "Delete?"); got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "Delete? [y/N] " {
			t.Errorf("confirm() asked %q", out.String())
		}
	}
}

func TestEditable(t *testing.T) {
	tests := []struct {
		field invest.TradeField
		raw   string
		want  bool
	}{
		{invest.FieldPrice, "12.5", true},
		{invest.FieldPrice, "1O", false},
		{invest.FieldPrice, "", false},
		{invest.FieldShares, "3", true},
		{invest.FieldShares, "Infinity", false},
		{invest.FieldDate, "whenever", true},
	}
	for _, tt := range tests {
		if got := editable(tt.field, tt.raw); got != tt.want {
			t.Errorf("editable(%s, %q) = %v, want %v", tt.field, tt.raw, got, tt.want)
		}
	}
}

func TestCompletion(t *testing.T) {
	root := completion()
	for _, e := range commands {
		if _, ok := root.Sub[e.cmd.Name()]; !ok {
			t.Errorf("completion has no %q subcommand", e.cmd.Name())
		}
	}
	if _, ok := root.Flags["store"]; !ok {
		t.Error("completion has no -store flag")
	}
	plan := root.Sub["plan"]
	for _, f := range []string{"horizon", "goal", "risk", "amount", "clear"} {
		if _, ok := plan.Flags[f]; !ok {
			t.Errorf("plan completion has no -%s flag", f)
		}
	}
}
