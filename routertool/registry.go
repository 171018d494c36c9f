package routertool

import (
	"errors"

	"github.com/flexigpt/llmtools-go"

	"github.com/flexigpt/skillrouter-go/spec"
)

// NewRouterRegistry creates an llmtools-go Registry and registers ONLY
// the router tools into it.
func NewRouterRegistry(
	router spec.Router,
	opts ...llmtools.RegistryOption,
) (*llmtools.Registry, error) {
	if router == nil {
		return nil, errors.New("nil router")
	}
	r, err := llmtools.NewRegistry(opts...)
	if err != nil {
		return nil, err
	}
	if err := Register(r, router); err != nil {
		return nil, err
	}
	return r, nil
}
