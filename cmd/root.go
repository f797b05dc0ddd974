package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cms",
	Short: "headless content management tool",
	Example: `cms serve
cms collection create -n article
cms field create -c article -f title -t string
cms content create -c article -d '{"title":"Hello"}'
cms content update -i <item-id> -v 1 -d '{"title":"Hi"}' -s published
cms revision list -i <item-id>
cms translation set -i <item-id> -f title -l de -v Hallo
cms term add -V topics -t science
cms nav tree`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(contextCommand)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.PersistentFlags().StringVar(&Addr, "addr", "", "grpc address of the cms server")
	rootCmd.PersistentFlags().StringVar(&Actor, "actor", "", "acting user id sent with every call")

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
