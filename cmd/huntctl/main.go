// huntctl is a line-oriented test client. It speaks the binary websocket
// framing and maps simple stdin commands onto game messages.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/monsterhunt/gameserver/network"
)

// send frames and sends one message to the server.
func send(c *websocket.Conn, msgID uint16, data []byte) error {
	return c.WriteMessage(websocket.BinaryMessage, network.EncodeFrame(msgID, data))
}

func sendJSON(c *websocket.Conn, msgID uint16, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return send(c, msgID, data)
}

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	name := flag.String("name", "hunter", "player name")
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			pkt, err := network.DecodeFrame(message)
			if err != nil {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			log.Printf("<- RECV (ID: %d): %s", pkt.MsgID, string(pkt.Data))
		}
	}()

	log.Println("Commands: create [mode] | join <roomId> | start | move <locationId> |")
	log.Println("          attack <playerId> | shoot <playerId> | revive <playerId> |")
	log.Println("          vote <playerId> | say <message> | leave | quit")

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if err := dispatch(c, *name, strings.Fields(strings.TrimSpace(line))); err != nil {
				log.Println("Write error:", err)
				return
			}
		}
	}
}

func dispatch(c *websocket.Conn, name string, args []string) error {
	if len(args) == 0 {
		return nil
	}
	arg := func(i int) string {
		if len(args) > i {
			return args[i]
		}
		return ""
	}

	switch args[0] {
	case "create":
		mode := arg(1)
		if mode == "" {
			mode = "huntAndDiscuss"
		}
		return sendJSON(c, network.MsgTypeCreateRoom, map[string]interface{}{
			"playerName": name,
			"gameMode":   mode,
		})
	case "join":
		return sendJSON(c, network.MsgTypeJoinRoom, map[string]interface{}{
			"roomId":     arg(1),
			"playerName": name,
		})
	case "start":
		return send(c, network.MsgTypeStartGame, nil)
	case "move":
		loc, err := strconv.Atoi(arg(1))
		if err != nil {
			log.Println("move needs a numeric location id")
			return nil
		}
		return sendJSON(c, network.MsgTypeMove, map[string]int{"locationId": loc})
	case "attack":
		return sendJSON(c, network.MsgTypeMonsterAttack, map[string]string{"targetId": arg(1)})
	case "shoot":
		return sendJSON(c, network.MsgTypeSheriffShoot, map[string]string{"targetId": arg(1)})
	case "revive":
		return sendJSON(c, network.MsgTypeDoctorRevive, map[string]string{"targetId": arg(1)})
	case "vote":
		return sendJSON(c, network.MsgTypeCastVote, map[string]string{"targetId": arg(1)})
	case "say":
		return sendJSON(c, network.MsgTypeChat, map[string]string{"message": strings.Join(args[1:], " ")})
	case "leave":
		return send(c, network.MsgTypeLeaveRoom, nil)
	case "quit":
		return c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	default:
		log.Printf("Unknown command %q", args[0])
		return nil
	}
}
