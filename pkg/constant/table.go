package constant

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedTable = errors.New("unsupported constant table format")
	ErrNonScalarValue   = errors.New("constant value is not a scalar")
)

// LoadFile registers constants from a YAML or TOML table file.
// The file maps type paths to member tables:
//
//	com.example.Service:
//	  NAME: health
//	  PORT: 8080
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	table := make(map[string]map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &table)
	case ".toml":
		err = toml.Unmarshal(data, &table)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedTable, path)
	}
	if err != nil {
		return fmt.Errorf("error parsing constant table %s: %w", path, err)
	}

	if err := r.registerTable(table); err != nil {
		return fmt.Errorf("error loading constant table %s: %w", path, err)
	}

	slog.Debug("Loaded constant table", "path", path, "types", len(table))
	return nil
}

func (r *Registry) registerTable(table map[string]map[string]any) error {
	for typePath, members := range table {
		for member, value := range members {
			c, err := scalarConstant(value)
			if err != nil {
				return fmt.Errorf("%s%s%s: %w", typePath, PathSeparator, member, err)
			}
			r.Set(typePath, member, c)
		}
	}
	return nil
}

func scalarConstant(value any) (Constant, error) {
	switch v := value.(type) {
	case string:
		return NewString(v), nil
	case bool, int, int64, uint64:
		return NewValue(fmt.Sprint(v)), nil
	case float64:
		return NewValue(formatFloat(v)), nil
	case time.Time:
		return NewValue(v.Format(time.RFC3339)), nil
	default:
		return Constant{}, fmt.Errorf("%w: %T", ErrNonScalarValue, value)
	}
}

// formatFloat keeps a fraction on integral values, so 1.0 stays 1.0.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		s += ".0"
	}
	return s
}
