package graph

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// FileConfig is the TOML form of the DataSeries options.
//
//	xlabel = "t [s]"
//	ylabel = "U [V]"
//	title  = "Discharge"
//	x_low  = 0
//	grid   = true
//	legend = false
type FileConfig struct {
	XLabel string   `toml:"xlabel"`
	YLabel string   `toml:"ylabel"`
	Title  string   `toml:"title"`
	XLow   *float64 `toml:"x_low"`
	XHigh  *float64 `toml:"x_high"`
	YLow   *float64 `toml:"y_low"`
	YHigh  *float64 `toml:"y_high"`
	Grid   *bool    `toml:"grid"`
	Legend *bool    `toml:"legend"`
}

// Options converts the configuration to DataSeries options.
// Unset keys keep the DataSeries defaults.
func (c *FileConfig) Options() []Option {
	var opts []Option
	if c.XLabel != "" {
		opts = append(opts, WithXLabel(c.XLabel))
	}
	if c.YLabel != "" {
		opts = append(opts, WithYLabel(c.YLabel))
	}
	if c.Title != "" {
		opts = append(opts, WithTitle(c.Title))
	}
	if c.XLow != nil {
		opts = append(opts, WithXLow(*c.XLow))
	}
	if c.XHigh != nil {
		opts = append(opts, WithXHigh(*c.XHigh))
	}
	if c.YLow != nil {
		opts = append(opts, WithYLow(*c.YLow))
	}
	if c.YHigh != nil {
		opts = append(opts, WithYHigh(*c.YHigh))
	}
	if c.Grid != nil {
		opts = append(opts, WithGrid(*c.Grid))
	}
	if c.Legend != nil {
		opts = append(opts, WithLegend(*c.Legend))
	}
	return opts
}

// DecodeOptions parses TOML options. Values of the wrong type, such as a
// non-boolean grid, are rejected with ErrInvalidArgument.
func DecodeOptions(data string) ([]Option, error) {
	var c FileConfig
	md, err := toml.Decode(data, &c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidArgument, undec[0].String())
	}
	return c.Options(), nil
}

// LoadOptions reads TOML options from a file.
func LoadOptions(path string) ([]Option, error) {
	var c FileConfig
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidArgument, undec[0].String())
	}
	return c.Options(), nil
}
