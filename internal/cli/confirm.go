package cli

import (
	"fmt"
	"os"

	"github.com/grantsieve/grantsieve/internal/model"
	"github.com/grantsieve/grantsieve/internal/store"
	"github.com/spf13/cobra"
)

var (
	storePath      string
	confirmContext string
)

// confirmCmd represents the confirm command
var confirmCmd = &cobra.Command{
	Use:   "confirm <grant-name>",
	Short: "Confirm a grant candidate into the local store",
	Long: `Confirm records a reviewed grant name in the local grant store so
future extractions can be matched against it. Each confirmation may carry
the sentence it was found in; the store keeps the most recent contexts
per grant.

Example:
  grantsieve confirm "Clean Water Initiative"
  grantsieve confirm "Clean Water Initiative" --context "The EPA Grant Award for Clean Water Initiative..."`,
	Args: cobra.ExactArgs(1),
	RunE: runConfirm,
}

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup [grant-name]",
	Short: "Look up confirmed grants in the local store",
	Long: `Lookup prints the stored contexts for a confirmed grant, or lists
all confirmed grant names when no argument is given.

Example:
  grantsieve lookup
  grantsieve lookup "Clean Water Initiative"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(lookupCmd)

	defaultPath := model.DefaultConfig().Store.Path
	confirmCmd.Flags().StringVar(&storePath, "store", defaultPath, "grant store file path")
	confirmCmd.Flags().StringVar(&confirmContext, "context", "", "sentence or snippet the grant was found in")
	lookupCmd.Flags().StringVar(&storePath, "store", defaultPath, "grant store file path")
}

func runConfirm(cmd *cobra.Command, args []string) error {
	name := args[0]

	s := store.Open(storePath, os.Stderr)
	s.Confirm(name, confirmContext)

	contexts := s.Lookup(name)
	fmt.Printf("✓ Confirmed %q (%d stored contexts)\n", name, len(contexts))
	return nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	s := store.Open(storePath, os.Stderr)

	if len(args) == 0 {
		names := s.Names()
		if len(names) == 0 {
			fmt.Println("No confirmed grants.")
			return nil
		}
		for _, name := range names {
			fmt.Printf("%s (%d contexts)\n", name, len(s.Lookup(name)))
		}
		return nil
	}

	name := args[0]
	contexts := s.Lookup(name)
	if contexts == nil {
		return fmt.Errorf("grant not found: %s", name)
	}

	fmt.Printf("%s\n", name)
	for i, ctx := range contexts {
		fmt.Printf("  %d. %s\n", i+1, ctx)
	}
	return nil
}
