package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"debatearena/internal/config"
	"debatearena/internal/debate"
	"debatearena/internal/models"
	"debatearena/internal/openrouter"
	"debatearena/internal/output"
	"debatearena/internal/style"
)

func newDebateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debate",
		Short: "Run a judged debate between two models",
		RunE:  runDebate,
	}
	cmd.Flags().String("topic", "", "Debate topic (required)")
	cmd.Flags().String("preset", "", "Debate length: quick, standard, extended, or custom")
	cmd.Flags().Int("rounds", 0, "Round count for the custom preset (1-10)")
	cmd.Flags().String("pro-model", "", "Model arguing FOR the topic (default: free model)")
	cmd.Flags().String("con-model", "", "Model arguing AGAINST the topic (default: free model)")
	cmd.Flags().String("judge-model", "", "Model judging the debate (default: free model)")
	cmd.Flags().Bool("pro-thinking", false, "Request extended reasoning from the PRO model")
	cmd.Flags().Bool("con-thinking", false, "Request extended reasoning from the CON model")
	cmd.Flags().Bool("judge-thinking", false, "Request extended reasoning from the judge")
	cmd.Flags().String("pro-style", "", "Style for the PRO debater")
	cmd.Flags().String("con-style", "", "Style for the CON debater")
	cmd.Flags().String("judge-style", "", "Style for the judge")
	cmd.Flags().String("name", "", "Override output folder name (default: auto-slug from topic)")
	cmd.Flags().Bool("no-export", false, "Skip writing transcript.json and report.md")
	cmd.MarkFlagRequired("topic")
	return cmd
}

func runDebate(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	if s.APIKey == "" {
		return fmt.Errorf("API key required: set --api-key, ARENA_API_KEY, or OPENROUTER_API_KEY")
	}
	topicFlag, _ := cmd.Flags().GetString("topic")
	name, _ := cmd.Flags().GetString("name")
	noExport, _ := cmd.Flags().GetBool("no-export")

	log := newLogger(s.Verbose)
	defer log.Sync()

	client := openrouter.NewClient(s.APIKey)
	lineup, err := fillLineup(cmd.Context(), client, s)
	if err != nil {
		return err
	}

	repo := style.NewRepository(style.NewFileStore(s.StylesDir))
	orch := debate.NewOrchestrator(client, repo, log)

	render := output.NewRenderer(os.Stdout)
	render.Lineup(topicFlag, s.Preset, lineup.Pro, lineup.Con, lineup.Judge)

	var writer *output.Writer
	var outDir string
	if !noExport {
		slug := name
		if slug == "" {
			slug = output.GenerateSlug(topicFlag)
		}
		outDir, err = output.CreateOutputDir(s.OutputDir, slug)
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		writer = output.NewWriter(outDir)
	}

	orch.OnPhase = func(label string) {
		render.Phase(label)
		if writer != nil {
			writer.Log("phase: " + label)
		}
	}
	orch.OnTurn = func(turn debate.Turn) {
		render.Turn(turn)
		if writer != nil {
			writer.Log(fmt.Sprintf("[%s] %s (%s): %s", turn.Phase, turn.Side.Label(), turn.Model, turn.Content))
		}
	}
	orch.OnStream = render.Stream
	orch.OnVerdict = render.StreamVerdict

	// First Ctrl+C stops the debate and keeps the partial turn; a second
	// aborts outright.
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)
	go func() {
		<-sigs
		orch.Stop()
		<-sigs
		os.Exit(130)
	}()

	cfg := debate.Config{
		APIKey:        s.APIKey,
		Topic:         topicFlag,
		ProModel:      lineup.Pro,
		ConModel:      lineup.Con,
		JudgeModel:    lineup.Judge,
		ProThinking:   s.ProThinking,
		ConThinking:   s.ConThinking,
		JudgeThinking: s.JudgeThinking,
		Preset:        s.Preset,
		CustomRounds:  s.Rounds,
		Styles: debate.StyleSelection{
			Pro:   s.ProStyle,
			Con:   s.ConStyle,
			Judge: s.JudgeStyle,
		},
	}

	runErr := orch.Start(context.Background(), cfg)
	for {
		state := orch.Snapshot()
		if runErr != nil {
			var verr *debate.ValidationError
			if errors.As(runErr, &verr) {
				return runErr
			}
			render.Error(state.Err)
		}
		if state.Stopped {
			hadPartial := len(state.Transcript) > 0 && state.Transcript[len(state.Transcript)-1].Partial
			render.Stopped(hadPartial)
		}
		if !state.Stopped && runErr == nil {
			break
		}
		if !promptYesNo("Resume the debate? [y/N]: ") {
			break
		}
		runErr = orch.Continue(context.Background())
	}

	final := orch.Snapshot()
	if final.Verdict != "" {
		render.Verdict(final.Verdict)
	}

	if writer == nil {
		return nil
	}
	if err := writer.WriteLog(); err != nil {
		return fmt.Errorf("writing log: %w", err)
	}
	if err := exportDebate(writer, cfg, final, topicFlag); err != nil {
		return err
	}
	fmt.Printf("\nTranscript saved to %s\n", outDir)
	return nil
}

// fillLineup resolves unset models from the live free-model catalog,
// falling back to the builtin list when the catalog is unreachable.
func fillLineup(ctx context.Context, client *openrouter.Client, s *config.Settings) (models.Lineup, error) {
	lineup := models.Lineup{Pro: s.ProModel, Con: s.ConModel, Judge: s.JudgeModel}
	if lineup.Complete() {
		return lineup, nil
	}

	catalog, err := client.ListModels(ctx)
	if err != nil {
		fmt.Printf("Warning: could not fetch models: %v. Using defaults.\n", err)
		catalog = models.DefaultFreeModels()
	}
	registry := models.NewRegistry(catalog)
	if len(registry.FreeModels()) == 0 {
		registry = models.NewRegistry(models.DefaultFreeModels())
	}
	lineup = registry.FillLineup(lineup)
	if !lineup.Complete() {
		return lineup, fmt.Errorf("no free models available; set --pro-model, --con-model, and --judge-model")
	}
	return lineup, nil
}

func exportDebate(w *output.Writer, cfg debate.Config, state debate.RunState, topic string) error {
	rounds := 0
	if p, ok := debate.Presets[cfg.Preset]; ok {
		rounds = p.Rounds
	} else if cfg.Preset == "custom" {
		rounds = cfg.CustomRounds
	}

	export := &output.Export{
		Topic:      topic,
		Preset:     cfg.Preset,
		Rounds:     rounds,
		ProModel:   cfg.ProModel,
		ConModel:   cfg.ConModel,
		JudgeModel: cfg.JudgeModel,
		Turns:      state.Transcript,
		Verdict:    state.Verdict,
	}
	if winner, ok := debate.ParseWinner(state.Verdict); ok {
		export.Winner = string(winner)
	}

	if err := w.WriteJSON(export); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	if err := w.WriteMarkdown(export); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}

func promptYesNo(q string) bool {
	fmt.Print(q)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
