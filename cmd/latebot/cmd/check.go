package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/latebot/internal/app"
	"github.com/corey/latebot/internal/config"
	"github.com/corey/latebot/internal/domain/fuzzy"
)

var (
	checkPhrases   []string
	checkThreshold float64
	checkInterrupt int
	checkScorer    string
	checkQuiet     bool
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <text...>",
	Short: "Check whether text contains a late phrase",
	Long: "Matches text against the configured phrases without a daemon.\n" +
		"Reads stdin when no text is given. Exit status: 0 match, 1 no match, 2 error.",
	Args:          cobra.ArbitraryArgs,
	RunE:          runCheck,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	f := checkCmd.Flags()
	f.StringArrayVarP(&checkPhrases, "phrase", "p", nil, "Target phrase (repeatable, replaces configured phrases)")
	f.Float64VarP(&checkThreshold, "threshold", "t", fuzzy.DefaultSimilarityThreshold, "Word similarity threshold (0..1)")
	f.IntVarP(&checkInterrupt, "interrupt", "i", fuzzy.DefaultInterruptThreshold, "Extra words allowed between phrase words")
	f.StringVarP(&checkScorer, "scorer", "s", "", "Word scorer: "+strings.Join(config.ScorerNames, ", "))
	f.BoolVarP(&checkQuiet, "quiet", "q", false, "Quiet mode (exit status only)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		if !isStdinPipe() {
			fmt.Fprintln(cmd.ErrOrStderr(), "latebot check: no text given")
			return exitStatus{2}
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "latebot check: read stdin: %v\n", err)
			return exitStatus{2}
		}
		text = string(data)
	}

	cfg, _, err := config.Load(app.NewPaths(botRoot()).Config)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "latebot check: %v\n", err)
		return exitStatus{2}
	}
	applyCheckFlags(cmd, cfg)

	phrase, ok, err := checkText(cfg, text)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "latebot check: %v\n", err)
		return exitStatus{2}
	}
	if !checkQuiet {
		fmt.Fprint(cmd.OutOrStdout(), formatMatch(phrase.String(), ok))
	}
	if !ok {
		return exitStatus{1}
	}
	return nil
}

// applyCheckFlags overlays explicitly set flags on the loaded config.
func applyCheckFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("phrase") {
		cfg.Match.Phrases = checkPhrases
	}
	if f.Changed("threshold") {
		cfg.Match.SimilarityThreshold = checkThreshold
	}
	if f.Changed("interrupt") {
		cfg.Match.InterruptThreshold = checkInterrupt
	}
	if f.Changed("scorer") {
		cfg.Match.Scorer = strings.ToLower(strings.TrimSpace(checkScorer))
	}
}

// checkText validates cfg and returns the first phrase found in text.
func checkText(cfg *config.Config, text string) (fuzzy.Phrase, bool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	m, err := cfg.Matcher()
	if err != nil {
		return nil, false, err
	}
	phrase, ok := m.Find(text)
	return phrase, ok, nil
}
