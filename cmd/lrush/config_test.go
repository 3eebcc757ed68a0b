package main

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_LoadConfig_Returns_Defaults_When_No_Sources(t *testing.T) {
	t.Parallel()

	env := map[string]string{"HOME": t.TempDir()}

	cfg, sources, err := LoadConfig("", Config{}, nil, env)
	require.NoError(t, err)

	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(ConfigSources{}, sources); diff != "" {
		t.Fatalf("sources mismatch (-want +got):\n%s", diff)
	}
}

func Test_LoadConfig_Applies_Sources_In_Precedence_Order(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	globalPath := filepath.Join(home, ".config", "lrush", "config.json")
	explicitPath := filepath.Join(home, "explicit.json")

	writeFile(t, globalPath, `{"capacity": 100, "index_width": 16, "history": "/tmp/global"}`)
	writeFile(t, explicitPath, `{"capacity": 200, "index_width": 32}`)

	env := map[string]string{
		"HOME":           home,
		"LRUSH_CAPACITY": "300",
	}

	cfg, sources, err := LoadConfig(explicitPath, Config{Capacity: 400}, map[string]bool{keyCapacity: true}, env)
	require.NoError(t, err)

	want := Config{Capacity: 400, IndexWidth: 32, History: "/tmp/global"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	wantSources := ConfigSources{Global: globalPath, Explicit: explicitPath, Env: true}
	if diff := cmp.Diff(wantSources, sources); diff != "" {
		t.Fatalf("sources mismatch (-want +got):\n%s", diff)
	}
}

func Test_LoadConfig_Uses_XDG_Config_Home_When_Set(t *testing.T) {
	t.Parallel()

	xdg := t.TempDir()
	writeFile(t, filepath.Join(xdg, "lrush", "config.json"), `{"capacity": 7}`)

	env := map[string]string{"HOME": t.TempDir(), "XDG_CONFIG_HOME": xdg}

	cfg, _, err := LoadConfig("", Config{}, nil, env)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Capacity)
}

func Test_LoadConfig_Explicit_Zero_Overrides_Lower_Sources(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	path := filepath.Join(home, "zero.json")
	writeFile(t, path, `{"capacity": 0}`)

	env := map[string]string{"HOME": home}

	cfg, _, err := LoadConfig(path, Config{}, nil, env)
	require.NoError(t, err)
	require.Equal(t, 0, cfg.Capacity)

	// Same for an env variable set to 0.
	env["LRUSH_CAPACITY"] = "0"

	cfg, _, err = LoadConfig("", Config{}, nil, env)
	require.NoError(t, err)
	require.Equal(t, 0, cfg.Capacity)
}

func Test_LoadConfig_Unset_CLI_Flags_Do_Not_Override(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	writeFile(t, filepath.Join(home, ".config", "lrush", "config.json"), `{"capacity": 9}`)

	env := map[string]string{"HOME": home}

	cfg, _, err := LoadConfig("", Config{Capacity: 0}, map[string]bool{keyCapacity: false}, env)
	require.NoError(t, err)
	require.Equal(t, 9, cfg.Capacity)
}

func Test_LoadConfig_Returns_Error_When_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		env     map[string]string
		wantErr error
	}{
		{name: "BadJSONC", file: `{"capacity": }`, wantErr: errConfigInvalid},
		{name: "WrongType", file: `{"capacity": "big"}`, wantErr: errConfigInvalid},
		{name: "NegativeCapacity", file: `{"capacity": -3}`, wantErr: errCapacityInvalid},
		{name: "NotAnObject", file: `[16]`, wantErr: errConfigInvalid},
		{name: "TrailingGarbage", file: `{"capacity": 1} {}`, wantErr: errConfigInvalid},
		{name: "OddWidth", file: `{"index_width": 24}`, wantErr: errIndexWidthInvalid},
		{name: "EnvNotANumber", env: map[string]string{"LRUSH_CAPACITY": "lots"}, wantErr: errEnvInvalid},
		{name: "EnvBadWidth", env: map[string]string{"LRUSH_INDEX_WIDTH": "7"}, wantErr: errIndexWidthInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			home := t.TempDir()
			env := map[string]string{"HOME": home}

			for k, v := range tt.env {
				env[k] = v
			}

			path := ""
			if tt.file != "" {
				path = filepath.Join(home, "config.json")
				writeFile(t, path, tt.file)
			}

			_, _, err := LoadConfig(path, Config{}, nil, env)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func Test_ParseConfig_Reports_Keys_Present_In_File(t *testing.T) {
	t.Parallel()

	cfg, set, err := parseConfig([]byte(`{
		// "history" is commented out, so it must not count as set.
		// "history": "/tmp/h",
		"capacity": 0,
		"index_width": 16,
	}`))
	require.NoError(t, err)
	require.Equal(t, Config{Capacity: 0, IndexWidth: 16}, cfg)

	want := map[string]bool{keyCapacity: true, keyIndexWidth: true}
	if diff := cmp.Diff(want, set); diff != "" {
		t.Fatalf("set keys mismatch (-want +got):\n%s", diff)
	}
}

func Test_HistoryPath_Resolves_Default_And_Off(t *testing.T) {
	t.Parallel()

	env := map[string]string{"HOME": "/home/someone"}

	require.Equal(t, "/home/someone/.lrush_history", historyPath(Config{}, env))
	require.Empty(t, historyPath(Config{History: historyOff}, env))
	require.Equal(t, "/var/tmp/h", historyPath(Config{History: "/var/tmp/h"}, env))
}

func Test_FormatConfig_Omits_Empty_Optional_Fields(t *testing.T) {
	t.Parallel()

	text, err := FormatConfig(Config{Capacity: 3})
	require.NoError(t, err)
	require.Equal(t, "{\n  \"capacity\": 3\n}", text)
}
