package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"debatearena/internal/style"
)

func newStylesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "Manage debate styles",
	}
	cmd.AddCommand(newStylesListCmd())
	cmd.AddCommand(newStylesShowCmd())
	cmd.AddCommand(newStylesRemixCmd())
	cmd.AddCommand(newStylesDeleteCmd())
	cmd.AddCommand(newStylesDefaultsCmd())
	return cmd
}

func styleRepo(cmd *cobra.Command) (*style.Repository, error) {
	s, err := resolveSettings(cmd)
	if err != nil {
		return nil, err
	}
	return style.NewRepository(style.NewFileStore(s.StylesDir)), nil
}

func newStylesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and saved styles",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := styleRepo(cmd)
			if err != nil {
				return err
			}
			all, err := repo.ListAll()
			if err != nil {
				return err
			}
			for _, st := range all {
				kind := "user"
				if st.BuiltIn {
					kind = "built-in"
				}
				fmt.Printf("%-40s %-10s %s\n", st.ID, kind, st.Name)
			}
			return nil
		},
	}
}

func newStylesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print every prompt template of a style",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := styleRepo(cmd)
			if err != nil {
				return err
			}
			st := repo.Resolve(args[0])
			if st.ID != args[0] {
				fmt.Printf("Style %q not found; showing default style %q.\n\n", args[0], st.ID)
			}
			fmt.Printf("%s (%s)\n", st.Name, st.ID)
			if st.Description != "" {
				fmt.Println(st.Description)
			}
			for _, role := range style.Roles() {
				for _, slot := range style.Slots(role) {
					tmpl := st.Template(role, slot)
					if tmpl == "" {
						tmpl = "(inherits default)"
					}
					fmt.Printf("\n--- %s / %s ---\n%s\n", role, slot, tmpl)
				}
			}
			return nil
		},
	}
}

func newStylesRemixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remix <id>",
		Short: "Copy a style into an editable user style",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := styleRepo(cmd)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			st, err := repo.Remix(args[0], name)
			if err != nil {
				return err
			}
			fmt.Printf("Created %q (%s)\n", st.Name, st.ID)
			return nil
		},
	}
	cmd.Flags().String("name", "", "Name for the new style (default: \"<base> (remix)\")")
	return cmd
}

func newStylesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved user style",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := styleRepo(cmd)
			if err != nil {
				return err
			}
			if style.IsBuiltIn(args[0]) {
				return fmt.Errorf("%q is a built-in style and cannot be deleted", args[0])
			}
			if err := repo.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func newStylesDefaultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Show or set the default style per role",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := styleRepo(cmd)
			if err != nil {
				return err
			}
			pro, _ := cmd.Flags().GetString("pro")
			con, _ := cmd.Flags().GetString("con")
			judge, _ := cmd.Flags().GetString("judge")

			sel := repo.Defaults()
			if pro != "" || con != "" || judge != "" {
				if pro != "" {
					sel.Pro = pro
				}
				if con != "" {
					sel.Con = con
				}
				if judge != "" {
					sel.Judge = judge
				}
				sel, err = repo.SetDefaults(sel)
				if err != nil {
					return err
				}
			}
			fmt.Printf("pro:   %s\ncon:   %s\njudge: %s\n", sel.Pro, sel.Con, sel.Judge)
			return nil
		},
	}
	cmd.Flags().String("pro", "", "Default style for the PRO debater")
	cmd.Flags().String("con", "", "Default style for the CON debater")
	cmd.Flags().String("judge", "", "Default style for the judge")
	return cmd
}
