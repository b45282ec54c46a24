package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	http_common "github.com/humanbelnik/jukebox/internal/delivery/http/common"
	http_round "github.com/humanbelnik/jukebox/internal/delivery/http/round"
	http_vote "github.com/humanbelnik/jukebox/internal/delivery/http/vote"
	ws_round "github.com/humanbelnik/jukebox/internal/delivery/ws/round"
)

type Client struct {
	baseURL    string
	deviceID   string
	roleToken  string
	httpClient *http.Client
	wsConn     *websocket.Conn
	wsDone     chan struct{}
	scanner    *bufio.Scanner
}

func NewClient(baseURL string, scanner *bufio.Scanner) *Client {
	return &Client{
		baseURL:    baseURL,
		deviceID:   uuid.NewString(),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		scanner:    scanner,
	}
}

func (c *Client) makeRequest(method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.roleToken != "" {
		req.Header.Set("X-role-token", c.roleToken)
	}
	req.Header.Set(http_vote.DeviceHeader, c.deviceID)

	return c.httpClient.Do(req)
}

// expect decodes the response into out when it has the wanted status.
func expect(resp *http.Response, want int, out any) error {
	defer resp.Body.Close()
	if resp.StatusCode != want {
		var e http_common.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%s: %s", resp.Status, e.Message)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) prompt(text string) (string, error) {
	fmt.Print(text)
	if !c.scanner.Scan() {
		return "", fmt.Errorf("input closed")
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

func (c *Client) Login() error {
	role, err := c.prompt("Role (moderator/conductor): ")
	if err != nil {
		return err
	}
	code, err := c.prompt("Code: ")
	if err != nil {
		return err
	}

	resp, err := c.makeRequest(http.MethodPost, "/auth", map[string]string{"role": role, "code": code})
	if err != nil {
		return err
	}
	token := resp.Header.Get("X-role-token")
	if err := expect(resp, http.StatusAccepted, nil); err != nil {
		return err
	}
	c.roleToken = token
	fmt.Printf("Logged in as %s\n", role)
	return nil
}

func (c *Client) StartRound() error {
	resp, err := c.makeRequest(http.MethodGet, "/categories", nil)
	if err != nil {
		return err
	}
	var categories []string
	if err := expect(resp, http.StatusOK, &categories); err != nil {
		return err
	}
	fmt.Printf("Categories: %s\n", strings.Join(categories, ", "))

	category, err := c.prompt("Category: ")
	if err != nil {
		return err
	}
	req := http_round.StartRequestDTO{Category: category}
	if raw, err := c.prompt("Duration in seconds (empty for default): "); err == nil && raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q", raw)
		}
		req.DurationSeconds = &seconds
	}

	resp, err = c.makeRequest(http.MethodPost, "/rounds", req)
	if err != nil {
		return err
	}
	var round http_common.RoundDTO
	if err := expect(resp, http.StatusCreated, &round); err != nil {
		return err
	}
	fmt.Printf("Round %s open until %s\n", round.ID, round.EndsAt.Local().Format(time.TimeOnly))
	return nil
}

func (c *Client) CloseRound() error {
	resp, err := c.makeRequest(http.MethodPost, "/rounds/current/close", nil)
	if err != nil {
		return err
	}
	var round http_common.RoundDTO
	if err := expect(resp, http.StatusOK, &round); err != nil {
		return err
	}
	return c.ShowResults(round.ID)
}

func (c *Client) Vote() error {
	resp, err := c.makeRequest(http.MethodGet, "/rounds/current/options", nil)
	if err != nil {
		return err
	}
	var current http_round.CurrentOptionsDTO
	if err := expect(resp, http.StatusOK, &current); err != nil {
		return err
	}
	if len(current.Options) == 0 {
		return fmt.Errorf("no round is open")
	}
	for i, o := range current.Options {
		fmt.Printf("%d. %s (%s)\n", i+1, o.Title, o.Composer)
	}

	raw, err := c.prompt("Your choice: ")
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > len(current.Options) {
		return fmt.Errorf("invalid choice %q", raw)
	}

	resp, err = c.makeRequest(http.MethodPost, "/rounds/current/votes", http_vote.VoteRequestDTO{OptionID: current.Options[n-1].ID})
	if err != nil {
		return err
	}
	var admission http_vote.AdmissionDTO
	if err := expect(resp, http.StatusOK, &admission); err != nil {
		return err
	}
	if admission.Accepted {
		fmt.Println("Vote accepted")
	} else {
		fmt.Printf("You already voted for %s\n", admission.ChosenOptionID)
	}
	return nil
}

func (c *Client) ToggleVeto() error {
	optionID, err := c.prompt("Option id: ")
	if err != nil {
		return err
	}
	resp, err := c.makeRequest(http.MethodPost, "/rounds/current/vetoes/"+url.PathEscape(optionID), nil)
	if err != nil {
		return err
	}
	var round http_common.RoundDTO
	if err := expect(resp, http.StatusOK, &round); err != nil {
		return err
	}
	fmt.Printf("Vetoed: %v\n", round.Vetoed)
	return nil
}

func (c *Client) ShowResults(roundID string) error {
	resp, err := c.makeRequest(http.MethodGet, "/rounds/"+url.PathEscape(roundID)+"/results", nil)
	if err != nil {
		return err
	}
	var results http_round.ResultsDTO
	if err := expect(resp, http.StatusOK, &results); err != nil {
		return err
	}

	fmt.Printf("Results of %s (%d votes)\n", results.Round.Category, results.Round.TotalVotes)
	for _, row := range results.Rows {
		mark := ""
		switch {
		case row.Winner:
			mark = " <- winner"
		case row.Vetoed:
			mark = " (vetoed)"
		}
		fmt.Printf("%2d. %-30s %3d%s\n", row.Rank, row.Title, row.Count, mark)
	}
	return nil
}

// Watch subscribes to the live round and prints every snapshot until the
// connection drops.
func (c *Client) Watch(role ws_round.Role) error {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %v", err)
	}
	scheme := "ws"
	if base.Scheme == "https" {
		scheme = "wss"
	}
	u := url.URL{
		Scheme:   scheme,
		Host:     base.Host,
		Path:     base.Path + "/ws/rounds/current",
		RawQuery: url.Values{"role": {string(role)}}.Encode(),
	}

	header := http.Header{}
	if c.roleToken != "" {
		header.Set("X-role-token", c.roleToken)
	}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		return fmt.Errorf("websocket connection failed: %v", err)
	}
	c.wsConn = conn
	c.wsDone = make(chan struct{})

	go c.listenWebSocket()
	fmt.Println("Watching the current round, press Enter to stop")
	c.scanner.Scan()
	c.Close()
	return nil
}

func (c *Client) listenWebSocket() {
	defer close(c.wsDone)

	for {
		var snapshot ws_round.Snapshot
		if err := c.wsConn.ReadJSON(&snapshot); err != nil {
			return
		}
		if snapshot.Round == nil {
			fmt.Println("No round yet")
			continue
		}

		r := snapshot.Round
		fmt.Printf("[%s] %s %s, %.1fs left", snapshot.Cause, r.Category, r.Status, float64(r.Countdown.MsLeft)/1000)
		if len(snapshot.Tally) > 0 {
			ids := make([]string, 0, len(snapshot.Tally))
			for id := range snapshot.Tally {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Printf(" %s=%d", id, snapshot.Tally[id])
			}
		}
		fmt.Println()
	}
}

func (c *Client) Close() {
	if c.wsConn != nil {
		c.wsConn.Close()
		<-c.wsDone
		c.wsConn = nil
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080/api/v1", "API base URL")
	flag.Parse()

	scanner := bufio.NewScanner(os.Stdin)
	client := NewClient(*baseURL, scanner)
	defer client.Close()

	for {
		fmt.Println("\n=== Jukebox Console Client ===")
		fmt.Println("1. Watch the current round")
		fmt.Println("2. Vote")
		fmt.Println("3. Log in as moderator or conductor")
		fmt.Println("4. Start a round")
		fmt.Println("5. Close the round")
		fmt.Println("6. Toggle a veto")
		fmt.Println("7. Watch as operator")
		fmt.Println("0. Exit")
		fmt.Print("Choose: ")

		if !scanner.Scan() {
			break
		}

		var err error
		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			err = client.Watch(ws_round.RoleDisplay)
		case "2":
			err = client.Vote()
		case "3":
			err = client.Login()
		case "4":
			err = client.StartRound()
		case "5":
			err = client.CloseRound()
		case "6":
			err = client.ToggleVeto()
		case "7":
			err = client.Watch(ws_round.RoleOperator)
		case "0":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown choice")
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}
