package dashboard

import "context"

type DocumentCounter interface {
	Count(ctx context.Context) (int64, error)
}

type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}
