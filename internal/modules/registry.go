package modules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Veraticus/cc-prompt/internal/config"
)

// ErrUnknownModule is returned by Render for names with no builder.
var ErrUnknownModule = errors.New("unknown module")

// Builder renders one module from the full configuration.
type Builder func(ctx *Context, cfg *config.Config) *Module

var builders = map[string]Builder{
	"c": func(ctx *Context, cfg *config.Config) *Module { return C(ctx, cfg.C) },
}

// Render runs the named module.
func Render(name string, ctx *Context, cfg *config.Config) (*Module, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModule, name)
	}
	return build(ctx, cfg), nil
}

// Names lists the available modules.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
