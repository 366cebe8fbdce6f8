package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/glutils/testutil"
)

// runCLI 执行命令并返回退出码与输出
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("GLUTILS_LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_HelpAndVersion(t *testing.T) {
	code, out, _ := runCLI(t, "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Commands:")

	code, out, _ = runCLI(t, "version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "glutils dev\n"))
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, errOut := runCLI(t, "explode")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Unknown command: explode")

	code, _, _ = runCLI(t)
	assert.Equal(t, 1, code)
}

func TestRun_WrongArgCount(t *testing.T) {
	code, _, errOut := runCLI(t, "convert", "only-one")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "usage: glutils convert")
}

func TestConvert_DirectoryToJSONL(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFixture(t, dir, "shards/a.jsonl", "{\"n\":1}\n{\"n\":2}\n")
	testutil.WriteFixture(t, dir, "shards/b.jsonl", "{\"n\":3}\n{\"n\":4}\n")
	dst := filepath.Join(dir, "out", "merged.jsonl")

	code, out, errOut := runCLI(t, "convert", filepath.Join(dir, "shards"), dst)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "wrote "+dst+": records: 4\n", out)
	assert.Equal(t, "{\"n\":1}\n{\"n\":2}\n{\"n\":3}\n{\"n\":4}\n", testutil.ReadFile(t, dst))
}

func TestConvert_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFixture(t, dir, "notes.txt", "hello")

	code, _, errOut := runCLI(t, "convert", src, filepath.Join(dir, "out.json"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "UNKNOWN_FORMAT")
	assert.Contains(t, errOut, src)
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()

	doc := testutil.WriteFixture(t, dir, "doc.json", `{"b": 1, "a": [true]}`)
	code, out, errOut := runCLI(t, "inspect", doc)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "document: 2 keys\nkeys: a, b\n", out)

	csv := testutil.WriteFixture(t, dir, "rows.csv", "id,name\n1,ada\n2,grace\n")
	code, out, errOut = runCLI(t, "inspect", csv)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "records: 2\nkeys: id, name\n", out)
}

func TestFlatten(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFixture(t, dir, "groups.json", `{"b": [3], "a": [1, 2]}`)
	dst := filepath.Join(dir, "rows.jsonl")

	code, out, errOut := runCLI(t, "flatten", src, dst)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "wrote "+dst+": 3 rows from 2 categories\n", out)
	assert.Equal(t,
		"{\"category\":\"a\",\"value\":1}\n"+
			"{\"category\":\"a\",\"value\":2}\n"+
			"{\"category\":\"b\",\"value\":3}\n",
		testutil.ReadFile(t, dst))
}

func TestFlatten_CustomFields(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFixture(t, dir, "groups.json", `{"fruit": ["apple"]}`)
	dst := filepath.Join(dir, "rows.jsonl")

	code, _, errOut := runCLI(t, "flatten", "-category", "kind", "-value", "name", src, dst)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "{\"kind\":\"fruit\",\"name\":\"apple\"}\n", testutil.ReadFile(t, dst))
}

func TestFlatten_RejectsNonArrayValues(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFixture(t, dir, "groups.json", `{"a": 1}`)

	code, _, errOut := runCLI(t, "flatten", src, filepath.Join(dir, "rows.jsonl"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "INVALID_ARGUMENT")
}

func TestFlatten_RejectsRecords(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFixture(t, dir, "rows.jsonl", "{\"a\":1}\n")

	code, _, errOut := runCLI(t, "flatten", src, filepath.Join(dir, "out.jsonl"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "SHAPE_MISMATCH")
}

func TestLeaves(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFixture(t, dir, "tree.json", `{"b": [1, "x"], "a": {"c": true}}`)

	code, out, errOut := runCLI(t, "leaves", src)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "->a->c\ttrue\n->b->0\t1\n->b->1\t\"x\"\n", out)
}

func TestConvert_WritesMetricsTextfile(t *testing.T) {
	dir := t.TempDir()
	textfile := filepath.Join(dir, "glutils.prom")
	configPath := testutil.WriteFixture(t, dir, "glutils.yaml",
		"metrics:\n  enabled: true\n  namespace: glutils_cli_test\n  textfile_path: "+textfile+"\n")
	src := testutil.WriteFixture(t, dir, "in.json", `[{"a": 1}, {"a": 2}]`)

	code, _, errOut := runCLI(t, "convert", "-config", configPath, src, filepath.Join(dir, "out.jsonl"))
	require.Equal(t, 0, code, errOut)

	metrics := testutil.ReadFile(t, textfile)
	assert.Contains(t, metrics, `glutils_cli_test_loads_total{format="json",status="ok"} 1`)
	assert.Contains(t, metrics, `glutils_cli_test_writes_total{format="jsonl",status="ok"} 1`)
	assert.Contains(t, metrics, `glutils_cli_test_rows_total{format="jsonl",op="write"} 2`)
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := testutil.WriteFixture(t, dir, "glutils.yaml", "log:\n  format: xml\n")
	src := testutil.WriteFixture(t, dir, "in.json", `{}`)

	code, _, errOut := runCLI(t, "inspect", "-config", configPath, src)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "log format")
}
