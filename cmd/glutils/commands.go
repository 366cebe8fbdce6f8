package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/glutils/transform"
	"github.com/BaSui01/glutils/types"
)

// newFlagSet 创建子命令参数解析器，错误输出到 stderr
func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to config file")
	return fs, configPath
}

// parseArgs 解析参数并检查位置参数个数
func parseArgs(fs *flag.FlagSet, args []string, want int, usage string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != want {
		return nil, fmt.Errorf("usage: glutils %s %s", fs.Name(), usage)
	}
	return fs.Args(), nil
}

// withSession 在完整初始化的会话中执行 fn，并保证收尾
func withSession(configPath string, fn func(*session) error) (err error) {
	s, err := newSession(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); err == nil {
			err = closeErr
		}
	}()
	return fn(s)
}

// =============================================================================
// 🔄 convert 命令
// =============================================================================

func runConvert(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("convert", stderr)
	pos, err := parseArgs(fs, args, 2, "[-config f] <src> <dst>")
	if err != nil {
		return err
	}
	src, dst := pos[0], pos[1]

	return withSession(*configPath, func(s *session) error {
		data, err := s.loader.Convert(ctx, src, dst)
		if err != nil {
			return err
		}
		s.logger.Info("converted",
			zap.String("src", src),
			zap.String("dst", dst),
			zap.Stringer("shape", data.Kind()),
		)
		fmt.Fprintf(stdout, "wrote %s: %s\n", dst, describe(data))
		return nil
	})
}

// =============================================================================
// 🔍 inspect 命令
// =============================================================================

func runInspect(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("inspect", stderr)
	pos, err := parseArgs(fs, args, 1, "[-config f] <path>")
	if err != nil {
		return err
	}

	return withSession(*configPath, func(s *session) error {
		data, err := s.loader.Load(ctx, pos[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, describe(data))
		fmt.Fprintf(stdout, "keys: %s\n", strings.Join(keySet(data), ", "))
		return nil
	})
}

// describe 返回形状与大小，例如 "records: 3" 或 "document: 2 keys"
func describe(data types.Data) string {
	if data.Kind() == types.KindDocument {
		return fmt.Sprintf("document: %d keys", data.Len())
	}
	return fmt.Sprintf("%s: %d", data.Kind(), data.Len())
}

// keySet 返回 Document 的键或所有记录字段的并集，已排序
func keySet(data types.Data) []string {
	seen := make(map[string]struct{})
	_ = data.Match(
		func(recs types.Records) error {
			for _, row := range recs {
				for k := range row {
					seen[k] = struct{}{}
				}
			}
			return nil
		},
		func(doc types.Document) error {
			for k := range doc {
				seen[k] = struct{}{}
			}
			return nil
		},
	)

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// =============================================================================
// 📐 flatten 命令
// =============================================================================

func runFlatten(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("flatten", stderr)
	category := fs.String("category", transform.DefaultCategoryField, "Field holding the category")
	value := fs.String("value", transform.DefaultValueField, "Field holding the value")
	pos, err := parseArgs(fs, args, 2, "[-config f] [-category c] [-value v] <src> <dst>")
	if err != nil {
		return err
	}
	src, dst := pos[0], pos[1]

	return withSession(*configPath, func(s *session) error {
		data, err := s.loader.Load(ctx, src)
		if err != nil {
			return err
		}
		doc, ok := data.Document()
		if !ok {
			return types.NewError(types.ErrShapeMismatch, "flatten requires a document, got "+data.Kind().String()).WithPath(src)
		}

		groups, err := transform.GroupsFromDocument(doc)
		if err != nil {
			return err
		}
		rows := transform.Flatten(groups,
			transform.WithCategoryField(*category),
			transform.WithValueField(*value),
		)

		if err := s.loader.Write(ctx, types.FromRecords(rows), dst); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s: %d rows from %d categories\n", dst, len(rows), len(groups))
		return nil
	})
}

// =============================================================================
// 🌿 leaves 命令
// =============================================================================

func runLeaves(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("leaves", stderr)
	pos, err := parseArgs(fs, args, 1, "[-config f] <path>")
	if err != nil {
		return err
	}

	return withSession(*configPath, func(s *session) error {
		data, err := s.loader.Load(ctx, pos[0])
		if err != nil {
			return err
		}
		return transform.WalkLeaves(data, func(leaf any, location string) error {
			encoded, err := json.Marshal(leaf)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, "%s\t%s\n", location, encoded)
			return err
		})
	})
}
