package sandbox

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSource(t *testing.T, src string, require_ RequireFunc) (any, error) {
	t.Helper()
	engine := NewGojaEngine()
	body, err := engine.Compile("test", []byte(src))
	require.NoError(t, err)

	exports := make(map[string]any)
	module := &Module{Name: "test", Require: require_, Exports: exports}
	err = body.Run(require_, exports, module)
	return module.Exports, err
}

func noRequire(name string) (any, error) {
	return nil, fmt.Errorf("unexpected require of %q", name)
}

func TestGoja_PopulatesExports(t *testing.T) {
	value, err := runSource(t, `
		exports.answer = 42;
		exports.greet = 'hello';
	`, noRequire)
	require.NoError(t, err)

	m, ok := value.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 42, m["answer"])
	assert.Equal(t, "hello", m["greet"])
}

func TestGoja_ReplacesModuleExports(t *testing.T) {
	value, err := runSource(t, `
		module.exports = function () { return 'replaced'; };
	`, noRequire)
	require.NoError(t, err)
	assert.NotNil(t, value)

	_, isMap := value.(map[string]any)
	assert.False(t, isMap, "the replaced exports should not be the original container")
}

func TestGoja_RequireInjection(t *testing.T) {
	deps := map[string]any{
		"./math": map[string]any{"two": int64(2)},
	}
	value, err := runSource(t, `
		var math = require('./math');
		exports.four = math.two + math.two;
	`, func(name string) (any, error) {
		v, ok := deps[name]
		if !ok {
			return nil, fmt.Errorf("unknown dependency %q", name)
		}
		return v, nil
	})
	require.NoError(t, err)

	m := value.(map[string]any)
	assert.EqualValues(t, 4, m["four"])
}

func TestGoja_RequireFailureThrows(t *testing.T) {
	_, err := runSource(t, `require('./missing');`, func(name string) (any, error) {
		return nil, fmt.Errorf("no module %q", name)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestGoja_CompileError(t *testing.T) {
	engine := NewGojaEngine()
	_, err := engine.Compile("bad", []byte(`var = ;`))
	require.Error(t, err)
}

func TestGoja_RuntimeError(t *testing.T) {
	_, err := runSource(t, `throw new Error('kaboom');`, noRequire)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestBodyFunc(t *testing.T) {
	body := BodyFunc(func(require RequireFunc, exports map[string]any, module *Module) error {
		exports["native"] = true
		return nil
	})

	exports := make(map[string]any)
	module := &Module{Name: "n", Exports: exports}
	require.NoError(t, body.Run(nil, exports, module))
	assert.Equal(t, map[string]any{"native": true}, module.Exports)
}
