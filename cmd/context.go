package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/emrgen/cms"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configDir      = "./.tmp"
	configFileName = "cms"
	defaultAddr    = "localhost:4020"
	callTimeout    = 30 * time.Second
)

// Addr and Actor override the saved context for one invocation.
var (
	Addr  string
	Actor string
)

var contextCommand = &cobra.Command{
	Use:   "context",
	Short: "context commands",
}

func init() {
	contextCommand.AddCommand(setContextCommand())
	contextCommand.AddCommand(currentContextCommand())
	contextCommand.AddCommand(resetContextCommand())
}

type Context struct {
	Addr  string `mapstructure:"addr"`
	Actor string `mapstructure:"actor"`
}

// saves the context info to ./.tmp/cms.yml
func setContextCommand() *cobra.Command {
	var addr string
	var actor string

	command := &cobra.Command{
		Use:   "set",
		Short: "set context",
		Run: func(cmd *cobra.Command, args []string) {
			if addr == "" && actor == "" {
				color.Red(`missing: --server or --user`)
				return
			}

			current := readContext()
			if addr != "" {
				current.Addr = addr
			}
			if actor != "" {
				current.Actor = actor
			}

			if err := writeContext(current); err != nil {
				fmt.Println("error writing config file: ", err)
			} else {
				fmt.Println("context saved")
			}
		},
	}

	command.Flags().StringVarP(&addr, "server", "s", "", "grpc address of the cms server")
	command.Flags().StringVarP(&actor, "user", "u", "", "acting user id")

	return command
}

func currentContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "current",
		Short: "current context",
		Run: func(cmd *cobra.Command, args []string) {
			current := readContext()
			printField("Server", orDefault(current.Addr, defaultAddr))
			printField("Actor", current.Actor)
		},
	}

	return command
}

func resetContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "reset",
		Short: "reset context",
		Run: func(cmd *cobra.Command, args []string) {
			if err := writeContext(Context{}); err != nil {
				fmt.Println("error writing config file: ", err)
				return
			}
			fmt.Println("context reset")
		},
	}

	return command
}

func writeContext(current Context) error {
	if err := ensureConfigFile(); err != nil {
		return err
	}

	v := contextViper()
	v.Set("context", map[string]string{
		"addr":  current.Addr,
		"actor": current.Actor,
	})

	return v.WriteConfig()
}

func readContext() Context {
	var current Context

	if err := ensureConfigFile(); err != nil {
		fmt.Println("error creating config file: ", err)
		return current
	}

	v := contextViper()
	if err := v.ReadInConfig(); err != nil {
		fmt.Println("error reading config file: ", err)
	}

	if err := v.UnmarshalKey("context", &current); err != nil {
		fmt.Println("error unmarshalling config file: ", err)
	}

	return current
}

func contextViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.AddConfigPath(configDir)
	v.SetConfigType("yml")
	return v
}

// create file if it doesn't exist
func ensureConfigFile() error {
	path := filepath.Join(configDir, configFileName+".yml")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return file.Close()
}

// newClient connects to the server of the saved context, flags win.
func newClient() (cms.Client, error) {
	current := readContext()
	addr := orDefault(Addr, orDefault(current.Addr, defaultAddr))
	actor := orDefault(Actor, current.Actor)

	return cms.NewClient(addr, actor)
}

// callContext bounds one cli call.
func callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), callTimeout)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
