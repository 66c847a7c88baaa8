package index

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// migrate brings the schema up to date. Scripts are named NNNN_name.sql;
// each one sets user_version to its own number.
func (s *Store) migrate(ctx context.Context, source fs.FS) error {
	list, err := fs.ReadDir(source, ".")
	if err != nil {
		return err
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	if len(list) == 0 {
		return nil
	}

	current, err := s.userVersion(ctx)
	if err != nil {
		return err
	}
	final, err := scriptVersion(list[len(list)-1].Name())
	if err != nil {
		return err
	}
	if final > current {
		s.log.Debug("Bringing up index migrations", zap.Int("migration_count", final-current))
	}

	for _, f := range list {
		n := f.Name()
		v, err := scriptVersion(n)
		if err != nil {
			return err
		}
		if v <= current {
			continue
		}

		s.log.Debug("Executing index migration", zap.String("migration_name", n))
		script, err := fs.ReadFile(source, n)
		if err != nil {
			return err
		}
		if err := s.execTrans(ctx, string(script)); err != nil {
			return fmt.Errorf("migration %s: %w", n, err)
		}
		current = v
	}
	return nil
}

// scriptVersion extracts 2 from "0002_create_bindings.sql".
func scriptVersion(filename string) (int, error) {
	prefix, _, _ := strings.Cut(filename, "_")
	v, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, fmt.Errorf("migration %q is not numbered: %w", filename, err)
	}
	return v, nil
}
