package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-binarytrack/internal/cli"
	"github.com/askiada/go-binarytrack/pkg/track/container"
	"github.com/askiada/go-binarytrack/pkg/track/container/containertest"
)

func source() *containertest.Source {
	bin := &containertest.Dataset{
		Names:   []string{"model_number", "star_1_mass", "star_2_mass"},
		Columns: [][]float64{{1, 2, 3}, {10, 9, 8}, {5, 5, 4}},
	}
	star1 := &containertest.Dataset{
		Names:   []string{"model_number", "log_Teff"},
		Columns: [][]float64{{4, 5, 6}, {3, 3, 4}},
	}

	src := containertest.BinaryTrack(bin, star1, nil)
	src.Tree.AddGroup("profiles").AddTable("profile_7", containertest.Dataset{Names: []string{"zone"}, Columns: [][]float64{{1, 2}}})
	src.Tree.AddAttr("version", 2)

	return src
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	return path
}

// run executes the command line with args against an opener serving a fresh source per file.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	open := func([]string) container.Opener {
		return func(string) (container.Source, error) {
			return source(), nil
		}
	}

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd(open)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))

	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), err
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	path := touch(t, t.TempDir(), "track.h5")

	tcs := map[string]struct {
		args []string
		want []string
	}{
		"csv": {
			args: []string{"assemble", path},
			want: []string{
				"model_number,star_1_mass,star_2_mass,log_Teff,effective_T,mass_ratio\n",
				"1,10,5,3,1000,2\n",
				"3,8,4,4,10000,2\n",
			},
		},
		"table": {
			args: []string{"assemble", path, "--format", "table"},
			want: []string{"MODEL_NUMBER", "EFFECTIVE_T", "10000"},
		},
		"disable": {
			args: []string{"assemble", path, "--disable", "effective_T,mass_ratio"},
			want: []string{"model_number,star_1_mass,star_2_mass,log_Teff\n"},
		},
		"compare": {
			args: []string{"assemble", path, "--compare"},
			want: []string{"log_Teff_1"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := run(t, tc.args...)
			require.NoError(t, err)

			for _, want := range tc.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestAssembleToFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := touch(t, dir, "track.h5")
	out := filepath.Join(dir, "track.json")

	stdout, err := run(t, "assemble", path, "--format", "json", "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var got struct {
		Rows int `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 3, got.Rows)
}

func TestAssembleSQLite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := touch(t, dir, "track.h5")

	_, err := run(t, "assemble", path, "--format", "sqlite")
	require.Error(t, err)

	db := filepath.Join(dir, "tracks.sqlite")
	_, err = run(t, "assemble", path, "--format", "sqlite", "-o", db)
	require.NoError(t, err)
	assert.FileExists(t, db)
}

func TestAssembleErrors(t *testing.T) {
	t.Parallel()

	path := touch(t, t.TempDir(), "track.h5")

	tcs := map[string][]string{
		"missing file":   {"assemble", filepath.Join(t.TempDir(), "nope.h5")},
		"no argument":    {"assemble"},
		"unknown format": {"assemble", path, "--format", "xml"},
		"empty key":      {"assemble", path, "--key", ""},
		"bad log level":  {"assemble", path, "--log-level", "loud"},
	}

	for name, args := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	out, err := run(t, "inspect", touch(t, t.TempDir(), "track.h5"))
	require.NoError(t, err)

	for _, want := range []string{"/history/binary", "/history/star1", "/profiles/profile_7", "/version", "group", "table", "attribute"} {
		assert.Contains(t, out, want)
	}
}

func TestProfiles(t *testing.T) {
	t.Parallel()

	out, err := run(t, "profiles", touch(t, t.TempDir(), "track.h5"))
	require.NoError(t, err)
	assert.Contains(t, out, "profile_7")
}

func TestFields(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args    func(t *testing.T) []string
		want    []string
		notWant []string
	}{
		"list": {
			args:    func(*testing.T) []string { return []string{"fields"} },
			want:    []string{"effective_T", "log_Teff", "CE_phase"},
			notWant: []string{"STATUS"},
		},
		"disabled": {
			args:    func(*testing.T) []string { return []string{"fields", "--disable", "CE_phase"} },
			want:    []string{"effective_T"},
			notWant: []string{"CE_phase"},
		},
		"with track": {
			args: func(t *testing.T) []string { return []string{"fields", touch(t, t.TempDir(), "track.h5")} },
			want: []string{"computed", "missing input: log_Teff_2"},
		},
		"dot": {
			args: func(*testing.T) []string { return []string{"fields", "--dot", "-"} },
			want: []string{"strict digraph {", `"log_Teff" -> "effective_T"`},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := run(t, tc.args(t)...)
			require.NoError(t, err)

			for _, want := range tc.want {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tc.notWant {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}

func TestGrid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "a.h5")
	touch(t, dir, "b.h5")
	out := filepath.Join(t.TempDir(), "out")

	stdout, err := run(t, "grid", dir, "--workers", "2", "--output-dir", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 FILES")
	assert.Contains(t, stdout, "0 FAILED")

	assert.FileExists(t, filepath.Join(out, "a.csv"))
	assert.FileExists(t, filepath.Join(out, "b.csv"))
}

func TestGridFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "a.h5")

	var stdout bytes.Buffer
	cmd := cli.NewRootCmd(func([]string) container.Opener {
		return func(string) (container.Source, error) {
			return nil, containertest.ErrMissing
		}
	})
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"grid", dir, "--continue-on-error", "--log-level", "error"})

	err := cmd.ExecuteContext(context.Background())
	require.ErrorIs(t, err, cli.ErrTracksFailed)
	assert.Contains(t, stdout.String(), "1 FAILED")
}

func TestAttributesReachOpener(t *testing.T) {
	t.Parallel()

	var got []string
	cmd := cli.NewRootCmd(func(attributes []string) container.Opener {
		got = attributes

		return func(string) (container.Source, error) {
			return source(), nil
		}
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"inspect", touch(t, t.TempDir(), "track.h5"), "--attribute", "version", "--attribute", "initial_period"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, []string{"version", "initial_period"}, got)
}
