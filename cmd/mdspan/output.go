package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/pretty"

	"github.com/alnah/go-mdspan"
	"github.com/alnah/go-mdspan/internal/config"
	"github.com/alnah/go-mdspan/internal/render"
	"github.com/alnah/go-mdspan/internal/yamlutil"
)

// ErrEncode indicates a result could not be serialized.
var ErrEncode = errors.New("failed to encode result")

// encoder serializes results in the configured output format.
type encoder struct {
	format  string
	color   bool
	baseURL string
	lexer   string
}

// newEncoder creates an encoder for cfg. Color is resolved against w:
// "auto" enables it only when w is a terminal and NO_COLOR is unset.
func newEncoder(cfg *config.Config, w io.Writer, env *Environment) *encoder {
	return &encoder{
		format:  cfg.Output.Format,
		color:   colorEnabled(cfg.Output.Color, w, env),
		baseURL: cfg.BaseURL,
		lexer:   cfg.Output.Lexer,
	}
}

// colorEnabled resolves a color mode for output written to w.
func colorEnabled(mode string, w io.Writer, env *Environment) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return env.Getenv("NO_COLOR") == "" && w != nil && env.IsTerminal(w)
	}
}

// Encode renders res. Every encoding ends with a newline.
func (e *encoder) Encode(res *mdspan.Result) ([]byte, error) {
	switch e.format {
	case config.FormatYAML:
		data, err := yamlutil.Marshal(res)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
		return data, nil
	case config.FormatText:
		text := render.Text(res, render.TextOptions{Color: e.color, BaseURL: e.baseURL})
		return []byte(text + "\n"), nil
	case config.FormatHTML:
		out, err := render.HTML(res, render.HTMLOptions{BaseURL: e.baseURL, Lexer: e.lexer})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
		return []byte(out + "\n"), nil
	default:
		data, err := json.Marshal(res)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
		return prettyJSON(data, false, e.color), nil
	}
}

// Separator returns the text written between consecutive results on one
// stream.
func (e *encoder) Separator() string {
	if e.format == config.FormatYAML {
		return yamlutil.DocumentSeparator
	}
	return ""
}

// Extension returns the file extension for results written to a directory.
func (e *encoder) Extension() string {
	switch e.format {
	case config.FormatYAML:
		return "yaml"
	case config.FormatText:
		return "txt"
	case config.FormatHTML:
		return "html"
	default:
		return "json"
	}
}

// prettyJSON indents (or compacts) data and optionally colors it for a
// terminal. The result ends with a newline.
func prettyJSON(data []byte, compact, color bool) []byte {
	if compact {
		data = append(pretty.Ugly(data), '\n')
	} else {
		data = pretty.Pretty(data)
	}
	if color {
		data = pretty.Color(data, nil)
	}
	return data
}
