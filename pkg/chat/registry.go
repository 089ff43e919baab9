package chat

import (
	"context"
	"encoding/json"
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// Registry holds the tool set a conversation can invoke. Declarations are
// immutable once registered and names are unique. The registry itself has no
// side effects; those belong to the tool handlers.
type Registry struct {
	tools map[string]gollem.Tool
	order []string
}

// NewRegistry creates a registry with the given tools
func NewRegistry(tools ...gollem.Tool) (*Registry, error) {
	r := &Registry{
		tools: map[string]gollem.Tool{},
	}
	for _, tool := range tools {
		if err := r.Register(tool); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a tool. Registering a name twice fails.
func (r *Registry) Register(tool gollem.Tool) error {
	name := tool.Spec().Name
	if name == "" {
		return goerr.New("tool name is required")
	}
	if _, exists := r.tools[name]; exists {
		return goerr.Wrap(ErrToolAlreadyRegistered, "duplicate tool name", goerr.V("name", name))
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// Tools returns the registered tools in registration order
func (r *Registry) Tools() []gollem.Tool {
	out := make([]gollem.Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Specs returns the declarations of all registered tools
func (r *Registry) Specs() []gollem.ToolSpec {
	out := make([]gollem.ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].Spec())
	}
	return out
}

// Invoke validates the arguments against the tool's declaration and runs the
// handler. ErrUnknownTool and ErrInvalidToolArguments are recoverable:
// callers feed them back to the model rather than failing the session.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, goerr.Wrap(ErrUnknownTool, "tool is not registered", goerr.V("name", name))
	}

	validated, err := validateArguments(tool.Spec(), args)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidToolArguments, err.Error(), goerr.V("name", name))
	}

	return tool.Run(ctx, validated)
}

// validateArguments checks required parameters and coerces values to the
// declared types. Unknown extra arguments pass through untouched; handlers
// ignore what they do not expect.
func validateArguments(spec gollem.ToolSpec, args map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}

	for name, param := range spec.Parameters {
		value, ok := args[name]
		if !ok || value == nil {
			if param.Required {
				return nil, goerr.New("required parameter is missing", goerr.V("parameter", name))
			}
			continue
		}

		coerced, err := coerceValue(param.Type, value)
		if err != nil {
			return nil, goerr.Wrap(err, "parameter has wrong type",
				goerr.V("parameter", name),
				goerr.V("expected", string(param.Type)),
			)
		}
		out[name] = coerced
	}

	return out, nil
}

func coerceValue(t gollem.ParameterType, value any) (any, error) {
	switch t {
	case gollem.TypeString:
		s, ok := value.(string)
		if !ok {
			return nil, goerr.New("expected string")
		}
		return s, nil

	case gollem.TypeInteger:
		switch v := value.(type) {
		case int:
			return int64(v), nil
		case int64:
			return v, nil
		case float64:
			// JSON numbers arrive as float64
			if v != math.Trunc(v) {
				return nil, goerr.New("expected integer, got fraction")
			}
			return int64(v), nil
		case json.Number:
			return v.Int64()
		default:
			return nil, goerr.New("expected integer")
		}

	case gollem.TypeNumber:
		switch v := value.(type) {
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case float64:
			return v, nil
		case json.Number:
			return v.Float64()
		default:
			return nil, goerr.New("expected number")
		}

	case gollem.TypeBoolean:
		b, ok := value.(bool)
		if !ok {
			return nil, goerr.New("expected boolean")
		}
		return b, nil

	case gollem.TypeArray:
		a, ok := value.([]any)
		if !ok {
			return nil, goerr.New("expected array")
		}
		return a, nil

	case gollem.TypeObject:
		o, ok := value.(map[string]any)
		if !ok {
			return nil, goerr.New("expected object")
		}
		return o, nil

	default:
		return value, nil
	}
}
