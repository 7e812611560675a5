package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

// uniqueSlug derives a slug from title. When the base slug is taken the
// smallest free numeric suffix is appended: "go-basics", "go-basics-2", ...
func uniqueSlug(ctx context.Context, repo CatalogRepository, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "course"
	}

	existing, err := repo.SlugsWithPrefix(ctx, base)
	if err != nil {
		return "", err
	}
	return nextFreeSlug(base, existing), nil
}

func nextFreeSlug(base string, existing []string) string {
	taken := make(map[int]bool, len(existing))
	for _, s := range existing {
		if s == base {
			taken[1] = true
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(s, base+"-"))
		if err == nil && n > 1 {
			taken[n] = true
		}
	}
	if !taken[1] {
		return base
	}
	for n := 2; ; n++ {
		if !taken[n] {
			return base + "-" + strconv.Itoa(n)
		}
	}
}
