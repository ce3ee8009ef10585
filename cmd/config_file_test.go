package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExampleFiles(t *testing.T) {
	tests := []Mode{NewGlobalConfig()}
	for _, name := range ModeOrder {
		tests = append(tests, NewModes()[name])
	}

	dir := t.TempDir()
	for i := range tests {
		mode := tests[i]
		fname := filepath.Join(dir, "example.config")
		err := os.WriteFile(fname, []byte(mode.ExampleConfig()), 0644)
		if err != nil {
			t.Fatal(err.Error())
		}

		err = mode.ReadConfig(fname)
		if err != nil {
			t.Errorf("%d) Got error when parsing config file:\n%s",
				i, err.Error())
		}
	}
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		mode Mode
		text string
	}{
		{NewGlobalConfig(), "[config]\nVersion = 1.1.0\n"},
		{NewGlobalConfig(), "[config]\nVersion = one\n"},
		{NewGlobalConfig(), "[config]\nFamily = mt11213\n"},
		{NewGlobalConfig(), "[config]\nLogMode = loud\n"},
		{NewGlobalConfig(), "[config]\nLogFormat = xml\n"},
		{NewDumpConfig(), "[dump.config]\nFormat = octal\n"},
		{NewDumpConfig(), "[dump.config]\nCount = -1\n"},
		{NewDumpConfig(), "[dump.config]\nJumps = -2\n"},
		{NewCheckConfig(), "[check.config]\nBins = 1\n"},
		{NewCheckConfig(), "[check.config]\nDraws = 10\n"},
		{NewCheckConfig(), "[check.config]\nAlpha = 1.5\n"},
		{NewCheckpointConfig(), "[checkpoint.config]\nCodec = gzip\n"},
		{NewCheckpointConfig(), "[checkpoint.config]\nFile =\n"},
		{NewServeConfig(), "[serve.config]\nStreams = a\n"},
		{NewServeConfig(), "[serve.config]\nStreams = a:mt11213\n"},
		{NewServeConfig(), "[serve.config]\nStreams = a:mt19937:x\n"},
		{NewServeConfig(), "[dump.config]\nCount = 3\n"},
	}

	dir := t.TempDir()
	for i := range tests {
		fname := filepath.Join(dir, "bad.config")
		if err := os.WriteFile(fname, []byte(tests[i].text), 0644); err != nil {
			t.Fatal(err.Error())
		}
		if err := tests[i].mode.ReadConfig(fname); err == nil {
			t.Errorf("%d) Expected error when parsing:\n%s", i+1, tests[i].text)
		}
	}
}
