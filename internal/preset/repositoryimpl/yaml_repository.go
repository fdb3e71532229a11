package repositoryimpl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kazz187/agentstudio/internal/preset"
	"github.com/kazz187/agentstudio/pkg/cerr"
	"github.com/kazz187/agentstudio/pkg/storage"
)

const presetsPrefix = "presets"

var validName = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// YAMLRepository reads presets stored as presets/<name>.yaml. Built-in
// presets are served when storage has no file of the same name.
type YAMLRepository struct {
	storage  storage.Storage
	builtins map[string]func() *preset.Preset
}

func NewYAMLRepository(s storage.Storage, builtins ...func() *preset.Preset) *YAMLRepository {
	r := &YAMLRepository{storage: s, builtins: make(map[string]func() *preset.Preset)}
	for _, b := range builtins {
		r.builtins[b().Name] = b
	}
	return r
}

func presetPath(name string) string {
	return fmt.Sprintf("%s/%s.yaml", presetsPrefix, name)
}

func (r *YAMLRepository) Get(ctx context.Context, name string) (*preset.Preset, error) {
	if !validName.MatchString(name) {
		return nil, cerr.NewError(cerr.InvalidArgument, "invalid preset name", nil)
	}
	data, err := r.storage.Read(ctx, presetPath(name))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			if b, ok := r.builtins[name]; ok {
				return b(), nil
			}
		}
		return nil, cerr.WrapStorageReadError("preset", err)
	}
	return decode(name, data)
}

func (r *YAMLRepository) List(ctx context.Context) ([]*preset.Preset, error) {
	paths, err := r.storage.List(ctx, presetsPrefix)
	if err != nil {
		return nil, cerr.WrapStorageListError("presets", err)
	}

	byName := make(map[string]*preset.Preset, len(paths)+len(r.builtins))
	for name, b := range r.builtins {
		byName[name] = b()
	}
	for _, p := range paths {
		if !strings.HasSuffix(p, ".yaml") {
			continue
		}
		name := strings.TrimSuffix(path.Base(p), ".yaml")
		if !validName.MatchString(name) {
			continue
		}
		data, err := r.storage.Read(ctx, p)
		if err != nil {
			return nil, cerr.WrapStorageReadError("preset", err)
		}
		pr, err := decode(name, data)
		if err != nil {
			slog.WarnContext(ctx, "skipping invalid preset", "path", p, "error", err)
			continue
		}
		byName[name] = pr
	}

	presets := make([]*preset.Preset, 0, len(byName))
	for _, pr := range byName {
		presets = append(presets, pr)
	}
	sort.Slice(presets, func(i, j int) bool {
		return presets[i].Name < presets[j].Name
	})
	return presets, nil
}

// decode parses a preset file. The file name wins over any name field in
// the document so lookups stay consistent with the listing.
func decode(name string, data []byte) (*preset.Preset, error) {
	var p preset.Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to unmarshal preset %s: %w", name, err))
	}
	p.Name = name
	if vs := p.Validate(); len(vs) > 0 {
		return nil, cerr.NewError(cerr.Internal, "server error", fmt.Errorf("preset %s is invalid: %s", name, vs[0]))
	}
	return &p, nil
}
