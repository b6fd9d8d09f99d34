package envcfg

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type fileConfig struct {
	Number int    `yaml:"number" json:"number" toml:"number" edn:"number" env:"FILE_NUMBER"`
	Name   string `yaml:"name" json:"name" toml:"name" edn:"name" env:"FILE_NAME" env-default:"unnamed"`
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("cannot write test file: %v", err)
	}
	return path
}

func TestReadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    fileConfig
		wantErr bool
	}{
		{
			name:    "yaml",
			file:    "config.yaml",
			content: "number: 2\nname: test\n",
			want:    fileConfig{Number: 2, Name: "test"},
		},

		{
			name:    "json",
			file:    "config.json",
			content: `{"number": 2, "name": "test"}`,
			want:    fileConfig{Number: 2, Name: "test"},
		},

		{
			name:    "toml",
			file:    "config.toml",
			content: "number = 2\nname = \"test\"\n",
			want:    fileConfig{Number: 2, Name: "test"},
		},

		{
			name:    "edn",
			file:    "config.edn",
			content: `{:number 2 :name "test"}`,
			want:    fileConfig{Number: 2, Name: "test"},
		},

		{
			name:    "env",
			file:    "config.env",
			content: "FILE_NUMBER=2\nFILE_NAME=test\n",
			want:    fileConfig{Number: 2, Name: "test"},
		},

		{
			name:    "unknown extension",
			file:    "config.wrong",
			content: "number: 2\n",
			wantErr: true,
		},

		{
			name:    "broken file",
			file:    "config.json",
			content: "{number",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer os.Clearenv()

			path := writeTestFile(t, tt.file, tt.content)

			var cfg fileConfig
			if err := ReadConfig(path, &cfg); (err != nil) != tt.wantErr {
				t.Errorf("wrong error behavior %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(cfg, tt.want) {
				t.Errorf("wrong data %+v, want %+v", cfg, tt.want)
			}
		})
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	var cfg fileConfig
	if err := ReadConfig(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadConfigEnvOverlay(t *testing.T) {
	os.Setenv("FILE_NUMBER", "3")
	defer os.Clearenv()

	path := writeTestFile(t, "config.yaml", "number: 2\nname: test\n")

	var cfg fileConfig
	if err := ReadConfig(path, &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the environment overrides the file value, the file satisfies
	// the required field not present in the environment
	want := fileConfig{Number: 3, Name: "test"}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("wrong data %+v, want %+v", cfg, want)
	}
}
