package registry

import (
	_ "embed"
	"fmt"
	"math"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/wudi/heycore/values"
)

//go:embed constants.yaml
var supplementalConstantsYAML []byte

type yamlConstant struct {
	Name  string      `yaml:"name"`
	Type  string      `yaml:"type"`
	Value interface{} `yaml:"value"`
}

// Registry holds the three sealed tables: once Seal is called,
// Register* calls fail with an error instead of mutating state — the
// process-wide space is built once at construction and frozen.
type Registry struct {
	mu        sync.RWMutex
	sealed    bool
	constants map[string]*values.Value
	functions map[string]*Function
	classes   map[string]*Class
}

// New builds a Registry seeded with PHP_INT_MAX/PHP_INT_SIZE, the
// case-enumerated true/false/null literals, and the YAML-sourced
// supplemental constants, then seals it. wordSize must be 4 or 8.
func New(wordSize int) (*Registry, error) {
	r := &Registry{
		constants: make(map[string]*values.Value),
		functions: make(map[string]*Function),
		classes:   make(map[string]*Class),
	}

	var intMax int64
	switch wordSize {
	case 4:
		intMax = math.MaxInt32
	case 8:
		intMax = math.MaxInt64
	default:
		return nil, fmt.Errorf("registry: unsupported word size %d", wordSize)
	}
	r.constants["PHP_INT_MAX"] = values.NewInt(intMax)
	r.constants["PHP_INT_SIZE"] = values.NewInt(int64(wordSize))

	seedCaseInsensitiveLiteral(r.constants, "true", values.NewBool(true))
	seedCaseInsensitiveLiteral(r.constants, "false", values.NewBool(false))
	seedCaseInsensitiveLiteral(r.constants, "null", values.NewNull())

	var supplement []yamlConstant
	if err := yaml.Unmarshal(supplementalConstantsYAML, &supplement); err != nil {
		return nil, fmt.Errorf("registry: parsing supplemental constants: %w", err)
	}
	for _, c := range supplement {
		v, err := yamlConstantValue(c)
		if err != nil {
			return nil, fmt.Errorf("registry: constant %q: %w", c.Name, err)
		}
		r.constants[c.Name] = v
	}

	r.sealed = true
	return r, nil
}

func yamlConstantValue(c yamlConstant) (*values.Value, error) {
	switch c.Type {
	case "string":
		s, ok := c.Value.(string)
		if !ok {
			return nil, fmt.Errorf("expected string value")
		}
		return values.NewString(s), nil
	case "float":
		switch v := c.Value.(type) {
		case float64:
			return values.NewFloat(v), nil
		case string:
			switch v {
			case ".nan":
				return values.NewFloat(math.NaN()), nil
			case ".inf":
				return values.NewFloat(math.Inf(1)), nil
			case "-.inf":
				return values.NewFloat(math.Inf(-1)), nil
			}
		}
		return nil, fmt.Errorf("expected float value, got %T", c.Value)
	case "int":
		i, ok := c.Value.(int)
		if !ok {
			return nil, fmt.Errorf("expected int value")
		}
		return values.NewInt(int64(i)), nil
	default:
		return nil, fmt.Errorf("unknown constant type %q", c.Type)
	}
}

// seedCaseInsensitiveLiteral enumerates every case combination of word's
// letters, inserting each under the same value: this avoids a general
// case-folded lookup layer by enumerating every case combination of the
// handful of case-insensitive keywords once at init instead.
func seedCaseInsensitiveLiteral(table map[string]*values.Value, word string, v *values.Value) {
	n := len(word)
	for mask := 0; mask < (1 << uint(n)); mask++ {
		buf := make([]byte, n)
		for i := 0; i < n; i++ {
			c := word[i]
			if mask&(1<<uint(i)) != 0 {
				if c >= 'a' && c <= 'z' {
					c -= 'a' - 'A'
				}
			}
			buf[i] = c
		}
		table[string(buf)] = v
	}
}

// RegisterFunction adds a builtin function. Returns an error once the
// registry is sealed.
func (r *Registry) RegisterFunction(fn *Function) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("registry: sealed, cannot register function %q", fn.Name)
	}
	r.functions[fn.Name] = fn
	return nil
}

// RegisterClass adds a builtin class.
func (r *Registry) RegisterClass(c *Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("registry: sealed, cannot register class %q", c.Name)
	}
	r.classes[c.Name] = c
	return nil
}

// RegisterConstant adds a module-contributed constant. Exact-name match
// only — the case-insensitive treatment is reserved for true/false/null.
func (r *Registry) RegisterConstant(name string, v *values.Value) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("registry: sealed, cannot register constant %q", name)
	}
	r.constants[name] = v
	return nil
}

// Seal freezes the registry: after this, Register* calls return an
// error. New() already seals before returning, so Seal is only needed by
// callers that build a Registry some other way (e.g. tests assembling a
// minimal one by hand).
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

func (r *Registry) GetFunction(name string) (*Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.functions[name]
	return fn, ok
}

func (r *Registry) GetClass(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[name]
	return c, ok
}

// GetConstant looks up a constant by exact name: only true/false/null
// were seeded case-insensitively, by enumeration, so exact lookup
// suffices here.
func (r *Registry) GetConstant(name string) (*values.Value, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.constants[name]
	return v, ok
}
