package preset

import "context"

type Repository interface {
	Get(ctx context.Context, name string) (*Preset, error)
	List(ctx context.Context) ([]*Preset, error)
}
