// Package imagelink matches files in the upload directory to catalog models
// by filename prefix.
package imagelink

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/radixtech/quotehub/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
}

// Result reports one bulk-link pass.
type Result struct {
	Linked        int      `json:"linked"`
	UpdatedModels []string `json:"updated_models"`
}

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Linker struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) *Linker {
	return &Linker{
		db:   p.DB,
		log:  p.Log.Named("catalog.imagelink"),
		repo: p.Repo,
	}
}

// Link scans dir and assigns each image to the product whose model is the
// longest prefix of the file stem (model spaces compared as underscores).
// Each product and each file is linked at most once per pass.
func (l *Linker) Link(ctx context.Context, dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	products, err := l.repo.FindAll(ctx, l.db)
	if err != nil {
		return nil, err
	}

	// prefix (underscored model) -> original model name
	prefixes := make(map[string]string, len(products))
	for _, p := range products {
		if p.Model == "" {
			continue
		}
		prefixes[strings.ReplaceAll(p.Model, " ", "_")] = p.Model
	}

	type link struct {
		filename string
		model    string
	}
	var links []link

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !supportedExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))

		// Longest prefix wins so "A_B" beats "A" for file "A_B_1.png".
		candidates := make([]string, 0, len(prefixes))
		for prefix := range prefixes {
			candidates = append(candidates, prefix)
		}
		sort.Slice(candidates, func(i, j int) bool {
			if len(candidates[i]) != len(candidates[j]) {
				return len(candidates[i]) > len(candidates[j])
			}
			return candidates[i] < candidates[j]
		})

		for _, prefix := range candidates {
			if strings.HasPrefix(stem, prefix) {
				links = append(links, link{filename: name, model: prefixes[prefix]})
				delete(prefixes, prefix)
				break
			}
		}
	}

	if len(links) == 0 {
		return &Result{UpdatedModels: []string{}}, nil
	}

	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, lk := range links {
			if err := l.repo.SetImage(ctx, tx, lk.model, lk.filename); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated := make([]string, 0, len(links))
	for _, lk := range links {
		updated = append(updated, lk.model)
	}
	l.log.Info("images linked", zap.Int("count", len(updated)))
	return &Result{Linked: len(updated), UpdatedModels: updated}, nil
}
