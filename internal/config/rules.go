package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/xpledger/internal/badges"
	"github.com/alexanderramin/xpledger/internal/scoring"
	"gopkg.in/yaml.v3"
)

// Rules is the on-disk rules document: the scoring configuration at the
// top level plus an optional list of badge definitions.
type Rules struct {
	scoring.Config `yaml:",inline"`
	Badges         []badges.Definition `json:"badges,omitempty" yaml:"badges,omitempty"`
}

// DefaultRules returns the built-in scoring configuration and badges.
func DefaultRules() Rules {
	return Rules{Config: scoring.DefaultConfig(), Badges: badges.DefaultDefinitions()}
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// LoadRules reads a YAML or JSON rules file. Values are decoded on top of
// the defaults, merged, and validated. An empty path yields DefaultRules.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading rules %s: %w", path, err)
	}
	return ParseRules(data, isJSON(path))
}

// ParseRules decodes a rules document held in memory.
func ParseRules(data []byte, asJSON bool) (Rules, error) {
	r := Rules{Config: scoring.DefaultConfig()}
	if asJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&r); err != nil {
			return Rules{}, fmt.Errorf("parsing rules json: %w", err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&r); err != nil && !errors.Is(err, io.EOF) {
			return Rules{}, fmt.Errorf("parsing rules yaml: %w", err)
		}
	}

	r.Config = scoring.MergeWithDefaults(r.Config)
	if err := scoring.Validate(r.Config); err != nil {
		return Rules{}, err
	}
	if r.Badges == nil {
		r.Badges = badges.DefaultDefinitions()
	}
	return r, nil
}

// LoadScoring returns only the scoring part of a rules file.
func LoadScoring(path string) (scoring.Config, error) {
	r, err := LoadRules(path)
	if err != nil {
		return scoring.Config{}, err
	}
	return r.Config, nil
}

// SaveScoring validates cfg and writes it to path, as JSON when the
// extension is .json and YAML otherwise.
func SaveScoring(path string, cfg scoring.Config) error {
	return SaveRules(path, Rules{Config: cfg})
}

func SaveRules(path string, r Rules) error {
	r.Config = scoring.MergeWithDefaults(r.Config)
	if err := scoring.Validate(r.Config); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(r, "", "  ")
	} else {
		data, err = yaml.Marshal(r)
	}
	if err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating rules directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules %s: %w", path, err)
	}
	return nil
}
