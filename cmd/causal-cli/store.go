package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sage-x-project/causalproof/causal"
	"github.com/sage-x-project/causalproof/model"
)

// loadRegistry replays every EventInput recorded in the JSONL store file at
// path, in order, into a fresh in-memory registry bound to agentID.
// A missing store file is treated as an empty, freshly created registry.
func loadRegistry(path, agentID string) (*causal.Registry, error) {
	reg, err := causal.New(agentID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return reg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open event store: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}
		var input model.EventInput
		if err := json.Unmarshal([]byte(text), &input); err != nil {
			return nil, fmt.Errorf("event store %s line %d: %w", path, line, err)
		}
		if _, err := reg.RegisterEvent(input); err != nil {
			return nil, fmt.Errorf("event store %s line %d: replay failed: %w", path, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event store: %w", err)
	}

	return reg, nil
}

// appendEvent appends a single EventInput record to the JSONL store file,
// creating it if necessary.
func appendEvent(path string, input model.EventInput) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open event store: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}
