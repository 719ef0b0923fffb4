package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"debatearena/internal/config"
)

func main() {
	// Values already in the environment win over .env entries.
	godotenv.Load()

	root := &cobra.Command{
		Use:   "arena",
		Short: "Head-to-head LLM debates with a judged verdict",
		Long: "Arena pits two language models against each other in a structured debate:\n" +
			"opening statements, argument rounds, rapid-fire questions, closing statements,\n" +
			"and a third model's judged verdict, streamed to your terminal.",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("api-key", "", "OpenRouter API key (overrides OPENROUTER_API_KEY)")
	root.PersistentFlags().String("styles-dir", "", "Directory holding saved debate styles")
	root.PersistentFlags().String("output-dir", "output", "Directory for exported transcripts")
	root.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	root.AddCommand(newDebateCmd())
	root.AddCommand(newStylesCmd())
	root.AddCommand(newModelsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveSettings merges flags over environment over arena.yaml.
func resolveSettings(cmd *cobra.Command) (*config.Settings, error) {
	v := config.New()
	bind := func(key, flag string) {
		if f := cmd.Flags().Lookup(flag); f != nil {
			v.BindPFlag(key, f)
		} else if f := cmd.Root().PersistentFlags().Lookup(flag); f != nil {
			v.BindPFlag(key, f)
		}
	}
	bind("api_key", "api-key")
	bind("styles_dir", "styles-dir")
	bind("output_dir", "output-dir")
	bind("verbose", "verbose")
	bind("preset", "preset")
	bind("rounds", "rounds")
	bind("pro_model", "pro-model")
	bind("con_model", "con-model")
	bind("judge_model", "judge-model")
	bind("pro_thinking", "pro-thinking")
	bind("con_thinking", "con-thinking")
	bind("judge_thinking", "judge-thinking")
	bind("pro_style", "pro-style")
	bind("con_style", "con-style")
	bind("judge_style", "judge-style")
	return config.Resolve(v)
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
