// Command demo-entries drives a running scorekeeper instance with
// simulated rapid-entry traffic so the full pipeline (parse, duplicate
// resolution, ranking) can be exercised end to end.
package main

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"net/http"
	"time"
)

const requestTimeout = 5 * time.Second

type client struct {
	base string
	http *http.Client
}

func (c *client) post(path string, body, out any) (int, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}
	resp, err := c.http.Post(c.base+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		return 0, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

func main() {
	baseURL := flag.String("url", "http://localhost:9090", "scorekeeper base URL")
	eventID := flag.String("event", "demo-combine", "event id")
	drillID := flag.String("drill", "forty_yard", "active drill id")
	entries := flag.Int("entries", 50, "number of entries to submit")
	rosterSize := flag.Int("roster", 20, "seeded roster size, numbers 1..N")
	flag.Parse()

	c := &client{base: *baseURL, http: &http.Client{Timeout: requestTimeout}}

	var started struct {
		SessionID string `json:"session_id"`
	}
	status, err := c.post("/sessions", map[string]string{
		"event_id": *eventID,
		"drill_id": *drillID,
		"actor":    "demo-entries",
	}, &started)
	if err != nil || status != http.StatusCreated {
		log.Fatalf("start session failed: status=%d err=%v", status, err)
	}
	log.Printf("session %s started against %s", started.SessionID, *eventID)

	delims := []string{" ", ",", "-"}
	committed, prompted, rejected := 0, 0, 0

	for i := 0; i < *entries; i++ {
		roster := 1 + randomInt(*rosterSize)
		score := 4.0 + float64(randomInt(300))/100.0 // 4.00..6.99
		raw := fmt.Sprintf("%d%s%.2f", roster, delims[randomInt(len(delims))], score)

		var res struct {
			Outcome string `json:"outcome"`
		}
		status, err := c.post("/sessions/"+started.SessionID+"/entries",
			map[string]string{"mode": "rapid", "raw": raw}, &res)
		if err != nil {
			log.Fatalf("submit failed: %v", err)
		}

		switch res.Outcome {
		case "committed":
			committed++
		case "awaiting_decision":
			prompted++
			// Resolve every prompt with a replace so traffic keeps flowing.
			if _, err := c.post("/sessions/"+started.SessionID+"/decision",
				map[string]any{"decision": "replace"}, nil); err != nil {
				log.Fatalf("decision failed: %v", err)
			}
			committed++
		default:
			rejected++
			log.Printf("submission rejected: status=%d raw=%q", status, raw)
		}
	}

	resp, err := c.http.Get(*baseURL + "/events/" + *eventID + "/rankings")
	if err != nil {
		log.Fatalf("fetch rankings: %v", err)
	}
	defer resp.Body.Close()

	var rows []struct {
		Rank      int     `json:"rank"`
		PlayerID  string  `json:"player_id"`
		Composite float64 `json:"composite"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		log.Fatalf("decode rankings: %v", err)
	}

	log.Printf("done: committed=%d prompted=%d rejected=%d ranked=%d",
		committed, prompted, rejected, len(rows))
	for i, row := range rows {
		if i >= 10 {
			break
		}
		log.Printf("  #%d %s %.2f", row.Rank, row.PlayerID, row.Composite)
	}
}
