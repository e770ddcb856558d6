package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/remotefeed/internal/config"
)

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Manage credentials in the OS keychain",
}

var secretsSetCmd = &cobra.Command{
	Use:   "set <name> [value]",
	Short: "Store a credential in the OS keychain",
	Long: "Stores a credential under the \"remotefeed\" keychain service. When value is omitted it is read from stdin.\n" +
		"Names: " + strings.Join(config.SecretNames, ", "),
	Args: cobra.RangeArgs(1, 2),
	RunE: runSecretsSet,
}

func init() {
	rootCmd.AddCommand(secretsCmd)
	secretsCmd.AddCommand(secretsSetCmd)
}

func runSecretsSet(cmd *cobra.Command, args []string) error {
	name := args[0]
	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		fmt.Fprintf(os.Stderr, "%s: ", name)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read value: %w", err)
		}
		value = strings.TrimSpace(line)
	}

	if err := config.SetSecret(name, value); err != nil {
		return err
	}
	fmt.Printf("stored %s in the keychain\n", name)
	return nil
}
