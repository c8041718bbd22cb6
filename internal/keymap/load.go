package keymap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tm-cli/internal/store"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"
)

const luaEvalTimeout = 2 * time.Second

// Load reads a keymap config and applies its keymaps.normal table on top of the defaults. The
// evaluator is chosen by extension: .lua, .toml, .yaml or .yml. Entries whose action name is not
// recognized are skipped; a config with any other shape yields the defaults.
func Load(path string) (Keymap, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read keymap config: %w", err)
	}
	var pairs map[string]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		pairs, err = tomlPairs(b)
	case ".yaml", ".yml":
		pairs, err = yamlPairs(b)
	default:
		pairs, err = luaPairs(string(b), filepath.Base(path))
	}
	if err != nil {
		return Default(), fmt.Errorf("evaluate %s: %w", path, err)
	}
	return apply(Default(), pairs), nil
}

// LoadUser loads the first keymap config present in cfgDir. It never fails: a missing file means
// defaults, and read or evaluation errors are logged before falling back to defaults.
func LoadUser(cfgDir string, logger *log.Logger) Keymap {
	path := store.KeymapPath(cfgDir)
	if path == "" {
		return Default()
	}
	km, err := Load(path)
	if err != nil {
		if logger != nil {
			logger.Warn("keymap config ignored", "path", path, "err", err)
		}
		return Default()
	}
	if logger != nil {
		logger.Debug("keymap loaded", "path", path, "bindings", len(km.Normal))
	}
	return km
}

func apply(km Keymap, pairs map[string]string) Keymap {
	for tok, name := range pairs {
		if tok == "" {
			continue
		}
		if a, ok := ParseActionName(strings.TrimSpace(name)); ok {
			km.Bind(tok, a)
		}
	}
	return km
}

func tomlPairs(b []byte) (map[string]string, error) {
	var doc map[string]any
	if err := toml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return normalPairs(doc), nil
}

func yamlPairs(b []byte) (map[string]string, error) {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return normalPairs(doc), nil
}

// normalPairs digs keymaps.normal out of a decoded TOML or YAML document.
func normalPairs(doc any) map[string]string {
	keymaps, ok := asTable(doc)["keymaps"]
	if !ok {
		return nil
	}
	normal, ok := asTable(keymaps)["normal"]
	if !ok {
		return nil
	}
	out := map[string]string{}
	for tok, v := range asTable(normal) {
		if name, ok := v.(string); ok {
			out[tok] = name
		}
	}
	return out
}

// asTable accepts both map shapes the decoders produce; YAML maps with non-string keys
// (e.g. `1: set_todo`) decode as map[any]any.
func asTable(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out
	default:
		return nil
	}
}

// luaPairs runs the chunk with a restricted standard library and reads keymaps.normal from the
// table it returns.
func luaPairs(src, name string) (map[string]string, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), luaEvalTimeout)
	defer cancel()
	L.SetContext(ctx)

	fn, err := L.Load(strings.NewReader(src), name)
	if err != nil {
		return nil, err
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return nil, err
	}
	ret := L.Get(-1)
	L.Pop(1)

	root, ok := ret.(*lua.LTable)
	if !ok {
		return nil, nil
	}
	keymaps, ok := root.RawGetString("keymaps").(*lua.LTable)
	if !ok {
		return nil, nil
	}
	normal, ok := keymaps.RawGetString("normal").(*lua.LTable)
	if !ok {
		return nil, nil
	}
	out := map[string]string{}
	normal.ForEach(func(k, v lua.LValue) {
		var tok string
		switch k := k.(type) {
		case lua.LString:
			tok = string(k)
		case lua.LNumber:
			tok = k.String()
		default:
			return
		}
		if name, ok := v.(lua.LString); ok {
			out[tok] = string(name)
		}
	})
	return out, nil
}
