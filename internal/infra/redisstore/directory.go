package redisstore

import (
	"context"
	"errors"
	"fmt"

	"taskmill/internal/ports"

	"github.com/redis/go-redis/v9"
)

var _ ports.DirectoryLookup = (*Directory)(nil)

// Directory resolves display names from hashes the host application keeps in
// redis. Unknown ids resolve to an empty string, not an error; the factory
// applies its own fallbacks.
type Directory struct {
	C *Client
}

func NewDirectory(c *Client) *Directory { return &Directory{C: c} }

func (d *Directory) ResolveUserName(ctx context.Context, id string) (string, error) {
	return d.lookup(ctx, "directory:users", id)
}

func (d *Directory) ResolveCategoryName(ctx context.Context, id string) (string, error) {
	return d.lookup(ctx, "directory:categories", id)
}

func (d *Directory) ResolveProjectOrgUnit(ctx context.Context, projectID string) (string, error) {
	return d.lookup(ctx, "directory:project_org_units", projectID)
}

func (d *Directory) lookup(ctx context.Context, key, field string) (string, error) {
	v, err := d.C.Rdb.HGet(ctx, key, field).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("directory lookup failed for %s/%s: %w", key, field, err)
	}
	return v, nil
}
