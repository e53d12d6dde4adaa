package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var createUserCmd = &cobra.Command{
	Use:   "create-user <username> <password>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var out struct {
			UserID   int    `json:"user_id"`
			Username string `json:"username"`
		}
		err := postJSON(serverURL()+"/users/", map[string]string{
			"username": args[0],
			"password": args[1],
		}, &out)
		if err != nil {
			fatalf("create user: %v", err)
		}
		fmt.Printf("User created successfully. User ID: %d\n", out.UserID)
	},
}

func init() {
	rootCmd.AddCommand(createUserCmd)
}
