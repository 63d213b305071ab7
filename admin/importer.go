package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/girojogos/duoguard/gateway"
	"github.com/girojogos/duoguard/logger"
)

// challengeFile is the JSON shape of a challenge seed file.
type challengeFile struct {
	Challenges []challengeSeed `json:"challenges"`
}

type challengeSeed struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	MaxPoints   int    `json:"maxPoints"`
}

// ImportSummary reports what an import wrote.
type ImportSummary struct {
	Total    int
	Active   int
	Inactive int
}

// Importer seeds the challenge catalog from a JSON file.
type Importer struct {
	elevated *gateway.Elevated
	log      *logger.Logger
}

// NewImporter creates an importer writing as the given actor.
func NewImporter(gw *gateway.Gateway, actor string, log *logger.Logger) *Importer {
	return &Importer{
		elevated: gw.Elevated(actor),
		log:      log.WithComponent("admin.importer"),
	}
}

// ImportChallenges reads the seed file and writes one document per
// challenge under challenges/{id}. Even-numbered challenges start active,
// odd-numbered ones stay hidden until an admin flips them.
func (i *Importer) ImportChallenges(ctx context.Context, filename string) (*ImportSummary, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("admin: read %s: %w", filename, err)
	}

	var file challengeFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("admin: parse %s: %w", filename, err)
	}
	if len(file.Challenges) == 0 {
		return nil, fmt.Errorf("admin: %s contains no challenges", filename)
	}

	summary := &ImportSummary{}
	for _, ch := range file.Challenges {
		isActive := ch.ID%2 == 0
		path := fmt.Sprintf("challenges/%d", ch.ID)
		data := map[string]any{
			"id":          ch.ID,
			"title":       ch.Title,
			"description": ch.Description,
			"order":       ch.Order,
			"maxPoints":   ch.MaxPoints,
			"isActive":    isActive,
		}
		if _, err := i.elevated.Put(ctx, path, data); err != nil {
			return nil, fmt.Errorf("admin: write %s: %w", path, err)
		}

		summary.Total++
		if isActive {
			summary.Active++
		} else {
			summary.Inactive++
		}
		i.log.Info("challenge imported", logger.Fields(
			logger.FieldPath, path,
			"title", ch.Title,
			"is_active", isActive,
		))
	}

	i.log.Info("import finished", logger.Fields(
		"total", summary.Total,
		"active", summary.Active,
		"inactive", summary.Inactive,
	))
	return summary, nil
}
