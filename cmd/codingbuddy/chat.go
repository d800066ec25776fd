package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/RoboJunior/Coding-Buddy/pkg/httpclient"
	"github.com/RoboJunior/Coding-Buddy/pkg/protocol"
)

// ChatCmd is a minimal terminal client against an agent's run endpoint.
type ChatCmd struct {
	URL       string `help:"Base URL of the agent to chat with." default:"http://localhost:8002"`
	UserID    string `name:"user-id" help:"User id for the session." default:"local"`
	SessionID string `name:"session-id" help:"Session id (a fresh one is generated when empty)."`
	Verbose   bool   `help:"Print the tool activity of each run."`
}

func (c *ChatCmd) Run() error {
	sessionID := c.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	client := httpclient.New()
	endpoint := strings.TrimSuffix(c.URL, "/") + "/run"

	fmt.Printf("Chatting with %s (session %s). Type 'exit' to quit.\n", c.URL, sessionID)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			return nil
		}

		outcome, err := c.send(client, endpoint, protocol.AgentMessage{
			Query:     query,
			SessionID: sessionID,
			UserID:    c.UserID,
		})
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}

		if c.Verbose {
			for _, call := range outcome.FunctionCalls {
				fmt.Printf("  [tool] %s\n", call.Name)
			}
		}
		if outcome.HasFinalResponse() {
			fmt.Println(outcome.FinalResponse)
		} else {
			fmt.Println("(no answer produced)")
		}
	}
}

func (c *ChatCmd) send(client *httpclient.Client, endpoint string, msg protocol.AgentMessage) (*protocol.Outcome, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("agent returned HTTP %d", resp.StatusCode)
	}

	var outcome protocol.Outcome
	if err := json.NewDecoder(resp.Body).Decode(&outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}
