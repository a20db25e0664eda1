package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yukiacerium/socialmem/internal/client"
)

// The inspection commands talk to a running server; they hold no store of
// their own.

var contextCmd = &cobra.Command{
	Use:   "context [user-id]",
	Short: "Print the rendered context block for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New()
		data, err := c.Get("/api/users/" + args[0] + "/context")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary [user-id]",
	Short: "Print a user's memory and affection summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New()
		data, err := c.Get("/api/users/" + args[0] + "/summary")
		if err != nil {
			return err
		}
		return printIndented(data)
	},
}

var bondsCmd = &cobra.Command{
	Use:   "bonds [user-id]",
	Short: "Print a user's bond unlock state and progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New()
		data, err := c.Get("/api/users/" + args[0] + "/bonds")
		if err != nil {
			return err
		}
		return printIndented(data)
	},
}

func printIndented(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		fmt.Println(string(data))
		return nil
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
