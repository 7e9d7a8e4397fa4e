package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI("version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "MinThd "+version+"\n", out)
}

func TestUsage(t *testing.T) {
	code, out, _ := runCLI()
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "partition")
	assert.Contains(t, out, "bench")
}

func TestUnknownCommand(t *testing.T) {
	code, _, errOut := runCLI("serve")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `unknown command "serve"`)
}

func TestPartition(t *testing.T) {
	code, out, _ := runCLI("partition", "-length", "9", "-workers", "4")
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"0", "[0,", "3)", "3"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"3", "[7,", "9)", "2"}, strings.Fields(lines[4]))
}

func TestPartition_BadFlag(t *testing.T) {
	code, _, errOut := runCLI("partition", "-length", "many")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid value")
}

func TestBench_SingleRun(t *testing.T) {
	code, out, errOut := runCLI("bench", "-mode", "ranged", "-length", "1000", "-workers", "8", "-executor", "sequential", "-v")
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "ranged")
	assert.Contains(t, errOut, "starting benchmark")
	assert.Contains(t, errOut, "run finished")
}

func TestBench_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
bench:
  executor: traverse
  repeat: 2
  runs:
    - name: u
      mode: uniform
      length: 500
      workers: 16
`), 0o644))

	code, out, errOut := runCLI("bench", "-config", path)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, 2, strings.Count(out, "uniform"))
}

func TestBench_InvalidExecutor(t *testing.T) {
	code, _, errOut := runCLI("bench", "-mode", "ranged", "-length", "10", "-executor", "fibers")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown executor")
}
