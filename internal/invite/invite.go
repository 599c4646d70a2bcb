// Package invite mints space codes and invite tokens and builds shareable links.
package invite

import (
	"fmt"
	"net/url"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/segmentio/ksuid"

	"github.com/amit-tzadok/LDR/internal/model"
)

// Alphabet is the token alphabet: lowercase alphanumerics, so that
// case-insensitive matching loses no entropy.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// MinCodeLength keeps the token space above 10^18 (36^13 ~ 1.7e20).
const MinCodeLength = 13

// QueryParam is the link query parameter carrying the token.
const QueryParam = "invite"

// Generator creates space IDs and invite tokens.
type Generator struct {
	codeLength int
	baseURL    *url.URL
}

// NewGenerator creates a Generator. codeLength below MinCodeLength is raised to it.
func NewGenerator(codeLength int, baseURL string) (*Generator, error) {
	if codeLength < MinCodeLength {
		codeLength = MinCodeLength
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse invite base url: %w", err)
	}
	return &Generator{codeLength: codeLength, baseURL: u}, nil
}

// SpaceID returns a fresh, time-sortable space identifier.
func (g *Generator) SpaceID() string {
	return strings.ToLower(ksuid.New().String())
}

// Code returns a fresh invite token.
func (g *Generator) Code() (string, error) {
	code, err := gonanoid.Generate(Alphabet, g.codeLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	return code, nil
}

// CodePair returns two distinct invite tokens for the pair and trio slots.
func (g *Generator) CodePair() (pair string, trio string, err error) {
	pair, err = g.Code()
	if err != nil {
		return "", "", err
	}
	for {
		trio, err = g.Code()
		if err != nil {
			return "", "", err
		}
		if trio != pair {
			return pair, trio, nil
		}
	}
}

// Link returns the shareable URL for code.
func (g *Generator) Link(code string) string {
	if code == "" {
		return ""
	}
	u := *g.baseURL
	q := u.Query()
	q.Set(QueryParam, code)
	u.RawQuery = q.Encode()
	return u.String()
}

// Parse extracts the token from a typed code or a pasted invite link and
// normalizes it.
func Parse(input string) string {
	input = strings.TrimSpace(input)
	if strings.Contains(input, QueryParam+"=") {
		if u, err := url.Parse(input); err == nil {
			if code := u.Query().Get(QueryParam); code != "" {
				return model.NormalizeInviteCode(code)
			}
		}
	}
	return model.NormalizeInviteCode(input)
}
