// ossugame is a small top-down adventure game.
//
// Usage:
//
//	ossugame                 - Run the game
//	ossugame saves           - List save slots
//	ossugame genassets       - Generate placeholder art for the sample game
//
// Global flags:
//
//	--config <path>  - Path to the config file (default: search standard locations)
//	--spec <path>    - Path to the game spec (overrides the config)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/config"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/game"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/placeholders"
	"github.com/Soheil-Rasouli/ossu-game-project-1/internal/storage"
)

var (
	flagConfig string
	flagSpec   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ossugame",
	Short: "OSSU Game Project - a small top-down adventure",
	Long: `A small top-down adventure game: walk around, talk to villagers,
hit slimes, and move between regions.

Examples:
  ossugame
  ossugame --config my-config.yaml
  ossugame saves
  ossugame genassets`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return game.Run(flagConfig, flagSpec)
	},
}

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List save slots",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}

		store, err := storage.Open(cfg.SaveDB)
		if err != nil {
			return err
		}
		defer store.Close()

		saves, err := store.ListSaves()
		if err != nil {
			return err
		}
		if len(saves) == 0 {
			fmt.Println("No saves.")
			return nil
		}

		for _, save := range saves {
			fmt.Printf("%-12s region=%s saved=%s\n", save.Slot, save.Region, save.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var genassetsCmd = &cobra.Command{
	Use:   "genassets",
	Short: "Generate placeholder art for the sample game",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := placeholders.GenerateAssets("assets"); err != nil {
			return err
		}
		fmt.Println("Placeholder assets written to assets/images/")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to the config file")
	rootCmd.Flags().StringVar(&flagSpec, "spec", "", "Path to the game spec (overrides the config)")

	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(genassetsCmd)
}
