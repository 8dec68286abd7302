package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
)

const uiStateFileName = "ui_state.json"

// UIState is the on-disk shape of the JSON backend.
//
// It is "best effort": a missing or corrupted file reads as empty.
type UIState struct {
	Version int               `json:"version"`
	Prefs   map[string]string `json:"prefs,omitempty"`
}

// JSONFileKV stores preferences in <dir>/ui_state.json.
type JSONFileKV struct {
	Store Store
}

func (kv JSONFileKV) statePath() string {
	return kv.Store.path(uiStateFileName)
}

func (kv JSONFileKV) Location() string { return kv.statePath() }

func (kv JSONFileKV) load() (*UIState, error) {
	if strings.TrimSpace(kv.Store.Dir) == "" {
		return nil, ErrUnavailable
	}
	b, err := os.ReadFile(kv.statePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &UIState{Version: 1, Prefs: map[string]string{}}, nil
		}
		return nil, err
	}
	var st UIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return &UIState{Version: 1, Prefs: map[string]string{}}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	if st.Prefs == nil {
		st.Prefs = map[string]string{}
	}
	return &st, nil
}

func (kv JSONFileKV) save(st *UIState) error {
	if err := kv.Store.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	path := kv.statePath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (kv JSONFileKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	st, err := kv.load()
	if err != nil {
		return "", false, err
	}
	v, ok := st.Prefs[key]
	return v, ok, nil
}

func (kv JSONFileKV) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st, err := kv.load()
	if err != nil {
		return err
	}
	st.Prefs[key] = value
	return kv.save(st)
}

func (kv JSONFileKV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st, err := kv.load()
	if err != nil {
		return err
	}
	if _, ok := st.Prefs[key]; !ok {
		return nil
	}
	delete(st.Prefs, key)
	return kv.save(st)
}
