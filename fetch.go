package gopaginate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// fetch loads the page items and, when count is not nil, the total number of
// rows. Both queries are started before either is awaited. Either failing
// fails the whole fetch.
func fetch[T any](ctx context.Context, items, count *gorm.DB) ([]T, int64, error) {
	var (
		data  []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := items.WithContext(gctx).Find(&data).Error; err != nil {
			return fmt.Errorf("failed to fetch page items: %w", err)
		}

		return nil
	})

	if count != nil {
		g.Go(func() error {
			if err := count.WithContext(gctx).Count(&total).Error; err != nil {
				return fmt.Errorf("failed to count items: %w", err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	if data == nil {
		data = []T{}
	}

	return data, total, nil
}
