package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Expect   int    `json:"expect"`
	Critical bool   `json:"critical"`
	Envelope bool   `json:"envelope"`
	Auth     bool   `json:"auth"`
}

type config struct {
	Targets []target `json:"targets"`
}

type check struct {
	Target   target
	Status   int
	Duration time.Duration
	Problem  string
	Error    error
}

func (c check) failed() bool {
	return c.Error != nil || c.Problem != ""
}

func main() {
	var (
		base        string
		targetsPath string
		token       string
		timeout     time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "Editorial API base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "smoke_check", "targets.json"), "Path to JSON targets file")
	flag.StringVar(&token, "token", os.Getenv("SMOKE_TOKEN"), "Bearer token for targets marked auth (see cmd/seed output)")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		checks   []check
		breaking int
		warnings int
		skipped  int
	)
	for _, t := range targets {
		if t.Auth && token == "" {
			skipped++
			continue
		}
		c := runCheck(client, base, token, t)
		if c.failed() {
			if t.Critical {
				breaking++
			} else {
				warnings++
			}
		}
		checks = append(checks, c)
	}

	printReport(checks)

	fmt.Printf("Breaking: %d, Warnings: %d, Skipped (no token): %d\n", breaking, warnings, skipped)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

func runCheck(client *http.Client, base, token string, tgt target) check {
	c := check{Target: tgt}
	resp, dur, err := performRequest(client, base, token, tgt)
	c.Duration = dur
	if err != nil {
		c.Error = err
		return c
	}
	defer resp.Body.Close()

	c.Status = resp.StatusCode
	if tgt.Expect != 0 && resp.StatusCode != tgt.Expect {
		c.Problem = fmt.Sprintf("expected status %d", tgt.Expect)
		return c
	}
	if !tgt.Envelope {
		return c
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Error = fmt.Errorf("read body: %w", err)
		return c
	}
	c.Problem = envelopeProblem(body, resp.StatusCode)
	return c
}

func performRequest(client *http.Client, base, token string, tgt target) (*http.Response, time.Duration, error) {
	if client == nil {
		return nil, 0, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := strings.TrimRight(base, "/") + path

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, 0, err
	}
	if tgt.Auth {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	return resp, time.Since(start), nil
}

// envelopeProblem reports why body is not a well-formed response envelope, or "" when it is.
// Successful responses must carry "data"; failures must carry "error" with a code.
func envelopeProblem(body []byte, status int) string {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(body, &env); err != nil {
		return "body is not a JSON object"
	}
	if status >= http.StatusBadRequest {
		raw, ok := env["error"]
		if !ok {
			return "error response without error field"
		}
		var apiErr struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(raw, &apiErr); err != nil || apiErr.Code == "" {
			return "error field without code"
		}
		return ""
	}
	if _, ok := env["data"]; !ok {
		return "success response without data field"
	}
	return ""
}

func printReport(results []check) {
	fmt.Println("Smoke Check Report")
	fmt.Println("==================")
	for _, res := range results {
		status := "OK"
		if res.failed() {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		fmt.Printf("  Status: %d (%s) | Critical: %t\n", res.Status, res.Duration, res.Target.Critical)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
		} else if res.Problem != "" {
			fmt.Printf("  Problem: %s\n", res.Problem)
		}
	}
}
