package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"debatearena/internal/models"
	"debatearena/internal/openrouter"
)

func newModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List free models usable as debaters or judge",
		RunE:  runModels,
	}
	return cmd
}

func runModels(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	if s.APIKey == "" {
		return fmt.Errorf("API key required: set --api-key, ARENA_API_KEY, or OPENROUTER_API_KEY")
	}

	client := openrouter.NewClient(s.APIKey)
	catalog, err := client.ListModels(cmd.Context())
	if err != nil {
		fmt.Printf("Warning: could not fetch models: %v. Showing builtin defaults.\n\n", err)
		catalog = models.DefaultFreeModels()
	}

	registry := models.NewRegistry(catalog)
	free := registry.FreeModels()
	if len(free) == 0 {
		free = models.DefaultFreeModels()
	}
	for _, m := range free {
		fmt.Printf("%-50s %s\n", m.ID, m.Name)
	}
	fmt.Printf("\n%d free models\n", len(free))
	return nil
}
