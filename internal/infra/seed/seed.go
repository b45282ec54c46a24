package infra_seed

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/humanbelnik/jukebox/internal/model"
)

type optionDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Composer string `json:"composer"`
	Category string `json:"category"`
	// Older catalogs name the category categoryId.
	CategoryID string `json:"categoryId"`
	Section    string `json:"section"`
	Order      int    `json:"order"`
	Enabled    *bool  `json:"enabled"`
}

// LoadOptions reads a JSON array of catalog options. Options are enabled
// unless the file says otherwise; has-won is never read from the file.
func LoadOptions(path string) ([]model.Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var dtos []optionDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}

	options := make([]model.Option, 0, len(dtos))
	for _, d := range dtos {
		category := d.Category
		if category == "" {
			category = d.CategoryID
		}
		enabled := true
		if d.Enabled != nil {
			enabled = *d.Enabled
		}
		options = append(options, model.Option{
			ID:       d.ID,
			Title:    d.Title,
			Composer: d.Composer,
			Category: category,
			Section:  d.Section,
			Order:    d.Order,
			Enabled:  enabled,
		})
	}
	return options, nil
}
