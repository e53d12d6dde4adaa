package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var createRoomCmd = &cobra.Command{
	Use:   "create-room <name> <creator-id>",
	Short: "Create a new chat room",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		creatorID, err := strconv.Atoi(args[1])
		if err != nil {
			fatalf("creator-id must be a number: %v", err)
		}
		var out struct {
			RoomID int `json:"room_id"`
		}
		err = postJSON(serverURL()+"/rooms/", map[string]any{
			"name":       args[0],
			"creator_id": creatorID,
		}, &out)
		if err != nil {
			fatalf("create room: %v", err)
		}
		fmt.Printf("Room created successfully. Room ID: %d\n", out.RoomID)
	},
}

var roomCmd = &cobra.Command{
	Use:   "room <room-id>",
	Short: "Show the details of a room",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var out struct {
			RoomID  int    `json:"room_id"`
			Name    string `json:"name"`
			Creator string `json:"creator"`
		}
		if err := getJSON(serverURL()+"/rooms/"+args[0], &out); err != nil {
			fatalf("room details: %v", err)
		}
		fmt.Printf("Room ID: %d\n", out.RoomID)
		fmt.Printf("Room Name: %s\n", out.Name)
		fmt.Printf("Creator: %s\n", out.Creator)
	},
}

func init() {
	rootCmd.AddCommand(createRoomCmd)
	rootCmd.AddCommand(roomCmd)
}
