package evaluation

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"datenight/internal/planner/model"
)

// DecodeCatalog reads a JSON array of venues. Every venue needs an id.
func DecodeCatalog(r io.Reader) ([]model.Venue, error) {
	var venues []model.Venue
	if err := json.NewDecoder(r).Decode(&venues); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i := range venues {
		if strings.TrimSpace(venues[i].ID) == "" {
			return nil, fmt.Errorf("decode catalog: venue %d has no id", i)
		}
	}
	return venues, nil
}

func LoadCatalogFile(path string) ([]model.Venue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return DecodeCatalog(f)
}
