// =============================================================================
// glutils 主入口
// =============================================================================
// 记录文件转换工具：JSON / JSONL / CSV 加载、目录聚合、展平与叶子遍历
//
// 使用方法:
//
//	glutils convert shards/ merged.jsonl          # 目录聚合后写出
//	glutils convert -config glutils.yaml a.csv a.json
//	glutils inspect data.jsonl                    # 查看形状与字段
//	glutils flatten -category kind groups.json rows.jsonl
//	glutils leaves config.json                    # 列出所有叶子节点
//	glutils version                               # 显示版本信息
// =============================================================================

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"github.com/BaSui01/glutils/loader"
)

// =============================================================================
// 📦 版本信息（构建时注入）
// =============================================================================

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// =============================================================================
// 🎯 主函数
// =============================================================================

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run 执行子命令并返回进程退出码
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = loader.ContextWithRunID(ctx, uuid.NewString())

	var err error
	switch args[0] {
	case "convert":
		err = runConvert(ctx, args[1:], stdout, stderr)
	case "inspect":
		err = runInspect(ctx, args[1:], stdout, stderr)
	case "flatten":
		err = runFlatten(ctx, args[1:], stdout, stderr)
	case "leaves":
		err = runLeaves(ctx, args[1:], stdout, stderr)
	case "version":
		printVersion(stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		printUsage(stderr)
		return 1
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// =============================================================================
// 📋 版本和帮助
// =============================================================================

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "glutils %s\n", Version)
	fmt.Fprintf(w, "  Build Time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Git Commit: %s\n", GitCommit)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `glutils - record file utilities

Usage:
  glutils <command> [options] <args>

Commands:
  convert   Load a file or directory and write it in another format
  inspect   Show the shape, size and keys of a file or directory
  flatten   Turn a JSON object of arrays into category/value rows
  leaves    Print every leaf value with its location
  version   Show version information
  help      Show this help message

Options (all commands):
  -config <path>    Path to configuration file (YAML)

Options for 'flatten':
  -category <name>  Field holding the category (default "category")
  -value <name>     Field holding the value (default "value")

Formats:
  .json   object -> document, array -> records (read/write)
  .jsonl  one object per line -> records (read/write)
  .csv    header row + rows -> records (read only)
  <dir>   aggregate of all entries, shaped by the first one

Examples:
  glutils convert shards/ merged.jsonl
  glutils inspect -config /etc/glutils.yaml data.csv
  glutils flatten -category fruit -value name groups.json rows.jsonl
  glutils leaves settings.json
  glutils version`)
}
