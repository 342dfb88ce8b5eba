package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/invest"
	"github.com/etnz/invest/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete answers the shell completion requests for the command line, and
// exits when there was one. Install it with COMP_INSTALL=1 invest.
func Complete(name string) {
	completion().Complete(name)
}

func completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	root.Flags["store"] = predict.Files("*")
	root.Flags["quotes"] = predict.Set{"finnhub", "eodhd", "none"}

	names := make([]string, 0, len(commands))
	for _, e := range commands {
		fs := flag.NewFlagSet(e.cmd.Name(), flag.ContinueOnError)
		e.cmd.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		switch e.cmd.Name() {
		case "edit", "rm", "drop", "trades", "news", "quote":
			sub.Args = complete.PredictFunc(heldSymbols)
		case "topic":
			topics, _ := docs.GetAllTopics()
			sub.Args = predict.Set(topics)
		}
		if _, ok := sub.Flags["horizon"]; ok {
			sub.Flags["horizon"] = predict.Set{"short", "medium", "long"}
			sub.Flags["goal"] = predict.Set{"m3", "m5", "m8", "m10", "m20", "y5", "y10", "y15"}
			sub.Flags["risk"] = predict.Set{"conservative", "balanced", "aggressive"}
		}
		root.Sub[e.cmd.Name()] = sub
		names = append(names, e.cmd.Name())
	}
	root.Sub["help"] = &complete.Command{Args: predict.Set(names)}
	return root
}

// flagPredictors predicts anything for valued flags, and nothing for booleans.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// heldSymbols predicts the symbols in the ledger.
func heldSymbols(prefix string) []string {
	ledger, s, err := openLedger(context.Background())
	if err != nil {
		return nil
	}
	defer s.Close()
	var res []string
	for _, sym := range ledger.Symbols() {
		if strings.HasPrefix(sym, invest.NormalizeSymbol(prefix)) {
			res = append(res, sym)
		}
	}
	return res
}
