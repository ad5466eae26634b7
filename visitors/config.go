package visitors

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bawdo/sqltree/internal/quoting"
)

// Config is the YAML form of the renderer options:
//
//	dialect: postgres      # ansi | postgres | sqlite
//	quote: double          # double | backtick | none
//	placeholder: dollar    # at | colon | dollar
//	pretty: true
//
// Empty fields keep the dialect's defaults.
type Config struct {
	Dialect     string `yaml:"dialect"`
	Quote       string `yaml:"quote"`
	Placeholder string `yaml:"placeholder"`
	Pretty      bool   `yaml:"pretty"`
}

// LoadConfig decodes a Config from r. Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("visitors: decoding config: %w", err)
	}
	return c, nil
}

// Options converts c into renderer options.
func (c Config) Options() ([]Option, error) {
	var opts []Option
	switch c.Dialect {
	case "", "ansi":
	case "postgres":
		opts = append(opts, WithPlaceholder(PlaceholderDollar), WithDialect(DialectPostgres))
	case "sqlite":
		opts = append(opts, WithPlaceholder(PlaceholderColon), WithDialect(DialectSQLite))
	default:
		return nil, fmt.Errorf("visitors: unknown dialect %q", c.Dialect)
	}

	switch c.Quote {
	case "", "double":
	case "backtick":
		opts = append(opts, WithQuoting(quoting.Backtick))
	case "none":
		opts = append(opts, WithQuoting(quoting.Bare))
	default:
		return nil, fmt.Errorf("visitors: unknown quote style %q", c.Quote)
	}

	switch c.Placeholder {
	case "":
	case "at":
		opts = append(opts, WithPlaceholder(PlaceholderAt))
	case "colon":
		opts = append(opts, WithPlaceholder(PlaceholderColon))
	case "dollar":
		opts = append(opts, WithPlaceholder(PlaceholderDollar))
	default:
		return nil, fmt.Errorf("visitors: unknown placeholder style %q", c.Placeholder)
	}

	if c.Pretty {
		opts = append(opts, WithPretty())
	}
	return opts, nil
}

// NewRendererFromConfig builds a Renderer from c.
func NewRendererFromConfig(c Config) (*Renderer, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	return NewRenderer(opts...), nil
}
