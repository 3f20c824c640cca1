package sheet

import (
	"testing"

	"sprite-splitter/internal/segment"
)

func TestOptionsValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
		wantOK bool
	}{
		{"defaults", func(o *Options) {}, true},
		{"color-distance method", func(o *Options) { o.Method = segment.MethodColorDistance }, true},
		{"unknown method", func(o *Options) { o.Method = "watershed" }, false},
		{"one cluster", func(o *Options) { o.Clusters = 1 }, false},
		{"zero tolerance", func(o *Options) { o.Tolerance = 0 }, false},
		{"negative tolerance", func(o *Options) { o.Tolerance = -3 }, false},
		{"threshold over 255", func(o *Options) { o.WhiteThreshold = 300 }, false},
		{"negative threshold", func(o *Options) { o.WhiteThreshold = -1 }, false},
		{"threshold at bounds", func(o *Options) { o.WhiteThreshold = 255 }, true},
		{"negative padding", func(o *Options) { o.Padding = -1 }, false},
		{"zero padding", func(o *Options) { o.Padding = 0 }, true},
		{"zero min cell size", func(o *Options) { o.MinCellSize = 0 }, false},
		{"negative row tolerance", func(o *Options) { o.RowTolerance = -1 }, false},
		{"zero row tolerance", func(o *Options) { o.RowTolerance = 0 }, true},
		{"zero workers", func(o *Options) { o.Workers = 0 }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			tc.mutate(&opts)
			err := opts.Validate()
			if tc.wantOK && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tc.wantOK && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestNewProcessorRejectsInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Clusters = 0
	if _, err := NewProcessor(opts, nil); err == nil {
		t.Fatal("NewProcessor accepted invalid options")
	}
}
