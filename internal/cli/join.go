package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

var joinCmd = &cobra.Command{
	Use:   "join <username> <room-id>",
	Short: "Join a room and chat interactively",
	Long: `Connects to the room's websocket endpoint. Stored history is printed
first, then live messages as they arrive. Each line you type is sent as
"<username>: <line>". End input (Ctrl-D) to leave.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		username, roomID := args[0], args[1]

		conn, _, err := websocket.DefaultDialer.Dial(wsURL()+"/rooms/"+roomID, nil)
		if err != nil {
			fatalf("join room %s: %v", roomID, err)
		}
		defer conn.Close()
		fmt.Printf("Joined room %s. You can start chatting now.\n", roomID)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				_, data, err := conn.ReadMessage()
				if err != nil {
					return
				}
				fmt.Println(string(data))
			}
		}()

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			msg := fmt.Sprintf("%s: %s", username, line)
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				fatalf("send: %v", err)
			}
		}

		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		<-done
	},
}

func init() {
	rootCmd.AddCommand(joinCmd)
}
