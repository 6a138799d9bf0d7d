package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/organizeme/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

const (
	KeyTasks      = "organizeMe_tasks"
	KeyCategories = "organizeMe_categories"

	DefaultTTL = 7 * 24 * time.Hour
)

type Snapshot struct {
	Tasks      []model.Task     `json:"tasks"`
	Categories []model.Category `json:"categories"`
}

// Persister loads and saves the task/category snapshot. Load returns
// ErrNotFound when either value is missing or expired.
type Persister interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

func encodeValues(snap Snapshot) (tasks, categories string, err error) {
	ts := snap.Tasks
	if ts == nil {
		ts = []model.Task{}
	}
	cs := snap.Categories
	if cs == nil {
		cs = []model.Category{}
	}
	rawTasks, err := json.Marshal(ts)
	if err != nil {
		return "", "", fmt.Errorf("encode tasks: %w", err)
	}
	rawCategories, err := json.Marshal(cs)
	if err != nil {
		return "", "", fmt.Errorf("encode categories: %w", err)
	}
	return string(rawTasks), string(rawCategories), nil
}

func decodeValues(tasks, categories string) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal([]byte(tasks), &snap.Tasks); err != nil {
		return Snapshot{}, fmt.Errorf("decode %s: %w", KeyTasks, err)
	}
	if err := json.Unmarshal([]byte(categories), &snap.Categories); err != nil {
		return Snapshot{}, fmt.Errorf("decode %s: %w", KeyCategories, err)
	}
	if snap.Tasks == nil {
		snap.Tasks = []model.Task{}
	}
	if snap.Categories == nil {
		snap.Categories = []model.Category{}
	}
	return snap, nil
}
