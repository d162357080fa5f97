package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"facevault/gate"
	"facevault/vault"
)

var searchQuery string

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage vault entries",
	Long: `CRUD over the stored name/secret pairs. Every subcommand performs one
session gate check on entry and refuses to continue without a valid
session.`,
}

var vaultListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireGate(gate.PageVault); err != nil {
			return err
		}
		entries, err := app.vault.Search(searchQuery)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No passwords stored yet. Add one with 'facevault vault add'.")
			return nil
		}
		printEntries(entries)
		return nil
	},
}

var vaultAddCmd = &cobra.Command{
	Use:   "add <name> <secret>",
	Short: "Add a new entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireGate(gate.PageVault); err != nil {
			return err
		}
		entry, err := app.vault.Add(args[0], args[1])
		if err != nil {
			color.Red("%v", err)
			return err
		}
		color.Green("Added %q (id %s).", entry.Name, entry.ID)
		return nil
	},
}

var vaultUpdateCmd = &cobra.Command{
	Use:   "update <id> <name> <secret>",
	Short: "Update an existing entry in place",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireGate(gate.PageVault); err != nil {
			return err
		}
		if err := app.vault.Update(args[0], args[1], args[2]); err != nil {
			color.Red("%v", err)
			return err
		}
		color.Green("Entry updated.")
		return nil
	},
}

var vaultRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireGate(gate.PageVault); err != nil {
			return err
		}
		if err := app.vault.Remove(args[0]); err != nil {
			return err
		}
		color.Green("Entry removed.")
		return nil
	},
}

func printEntries(entries []vault.Entry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSECRET")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Name, e.Secret)
	}
	w.Flush()
}

func init() {
	vaultListCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "filter by name or secret (case-insensitive)")
	vaultCmd.AddCommand(vaultListCmd, vaultAddCmd, vaultUpdateCmd, vaultRemoveCmd)
	rootCmd.AddCommand(vaultCmd)
}
