package service

import (
	"fmt"

	"github.com/liliang-cn/ragshop/internal/domain"
)

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
}
