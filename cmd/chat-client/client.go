package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marketplace-server/ws"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
)

type chatMessage struct {
	ID     string `json:"id"`
	Sender struct {
		ID        string `json:"id"`
		FirstName string `json:"first_name"`
	} `json:"sender"`
	Receiver struct {
		ID string `json:"id"`
	} `json:"receiver"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

type loginSuccessMsg struct {
	userID string
	token  string
}
type connectedMsg struct{ conn *ws.Conn }
type incomingMsg chatMessage
type disconnectedMsg struct{ err error }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// userIDFromToken reads the user_id claim. The server checks the
// signature; the client only needs to know who it is.
func userIDFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	id, _ := claims["user_id"].(string)
	if id == "" {
		return "", errors.New("token carries no user id")
	}
	return id, nil
}

func loginUser(server, email, password string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		jsonData, _ := json.Marshal(map[string]string{
			"email":    email,
			"password": password,
		})
		resp, err := client.Post(strings.TrimRight(server, "/")+"/api/login", "application/json", bytes.NewReader(jsonData))
		if err != nil {
			return errMsg{fmt.Errorf("server not reachable: %w", err)}
		}
		defer resp.Body.Close()

		var result struct {
			Token string `json:"token"`
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return errMsg{fmt.Errorf("unexpected login response: %w", err)}
		}
		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("login failed: %s", result.Error)}
		}

		userID, err := userIDFromToken(result.Token)
		if err != nil {
			return errMsg{err}
		}
		return loginSuccessMsg{userID: userID, token: result.Token}
	}
}

// chatURL turns the http server address into the websocket endpoint.
func chatURL(server, userID, token string) (string, error) {
	u, err := url.Parse(strings.TrimRight(server, "/"))
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http", "":
		u.Scheme = "ws"
	}
	u.Path += "/api/chats"
	q := url.Values{}
	q.Set("id", userID)
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func connectChat(server, userID, token string) tea.Cmd {
	return func() tea.Msg {
		target, err := chatURL(server, userID, token)
		if err != nil {
			return errMsg{err}
		}
		conn, _, err := websocket.DefaultDialer.Dial(target, nil)
		if err != nil {
			return errMsg{fmt.Errorf("connect chat: %w", err)}
		}
		// every send runs on its own goroutine; ws.Conn serializes writes
		return connectedMsg{conn: ws.NewConn(conn)}
	}
}

// readNext waits for the next frame pushed by the server.
func readNext(conn *ws.Conn) tea.Cmd {
	return func() tea.Msg {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return disconnectedMsg{err: err}
			}
			var msg chatMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			return incomingMsg(msg)
		}
	}
}

func sendMessage(conn *ws.Conn, sender, receiver, content string) tea.Cmd {
	return func() tea.Msg {
		payload, _ := json.Marshal(map[string]string{
			"sender":   sender,
			"receiver": receiver,
			"content":  content,
			"date":     time.Now().UTC().Format(time.RFC3339),
		})
		if err := conn.Send(payload); err != nil {
			return disconnectedMsg{err: err}
		}
		return nil
	}
}
