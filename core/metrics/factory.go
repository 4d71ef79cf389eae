package metrics

import "github.com/kilianp07/evdash/core/factory"

var recorderRegistry = factory.NewRegistry[RunRecorder]()

// RegisterRunRecorder adds a recorder factory identified by name.
func RegisterRunRecorder(name string, f factory.Factory[RunRecorder]) error {
	return recorderRegistry.Register(name, f)
}

// NewRunRecorder creates a RunRecorder from the provided configuration.
func NewRunRecorder(cfgs []factory.ModuleConfig) (RunRecorder, error) {
	if len(cfgs) == 0 {
		return NopRecorder{}, nil
	}
	if len(cfgs) == 1 {
		return recorderRegistry.Create(cfgs[0])
	}
	recs := make([]RunRecorder, len(cfgs))
	for i, c := range cfgs {
		r, err := recorderRegistry.Create(c)
		if err != nil {
			return nil, err
		}
		recs[i] = r
	}
	return NewMultiRecorder(recs...), nil
}
