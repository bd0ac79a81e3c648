package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/okian/roster/internal/domain/model"
)

// Ranked output column names. The enrichment pass addresses the same
// columns by name, so they are shared constants rather than literals.
const (
	ColName      = "name"
	ColRating    = "rating"
	ColPosition  = "position"
	ColImageURL  = "imageUrl"
	ColFutbinURL = "futbinUrl"
)

// WriteRanked writes the ranked record set to path with the canonical
// name,rating,position header. The unknown-rating sentinel is written as
// an empty cell, never as a number.
func WriteRanked(path string, records []model.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermission); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("create ranked dataset: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{ColName, ColRating, ColPosition}); err != nil {
		_ = f.Close()
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range records {
		rating := ""
		if rec.Rating >= 0 {
			rating = strconv.Itoa(rec.Rating)
		}
		if err := w.Write([]string{rec.Name, rating, rec.Position}); err != nil {
			_ = f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush ranked dataset: %w", err)
	}
	return f.Close()
}
