package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetState clears package state between tests.
func resetState() {
	CloseAll()
	loggers = make(map[Category]*Logger)
	logsDir = ""
	dataDir = ""
	config = loggingConfig{}
}

// TestAllCategoriesLog tests that all categories create log files when
// debug_mode is true.
func TestAllCategoriesLog(t *testing.T) {
	tempDir := t.TempDir()

	configContent := `{
		"logging": {
			"level": "debug",
			"debug_mode": true,
			"categories": {
				"boot": true,
				"store": true,
				"checklist": true,
				"backup": true,
				"deadline": true,
				"cli": true
			}
		}
	}`

	configPath := filepath.Join(tempDir, "config.json")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	resetState()
	if err := Initialize(tempDir); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}

	if !IsDebugMode() {
		t.Error("Expected debug mode to be enabled")
	}

	categories := []Category{
		CategoryBoot,
		CategoryStore,
		CategoryChecklist,
		CategoryBackup,
		CategoryDeadline,
		CategoryCLI,
	}

	for _, cat := range categories {
		Get(cat).Info("test message for %s", cat)
	}
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(tempDir, "logs"))
	if err != nil {
		t.Fatalf("Failed to read logs dir: %v", err)
	}

	found := make(map[string]bool)
	for _, e := range entries {
		for _, cat := range categories {
			if strings.Contains(e.Name(), string(cat)) {
				found[string(cat)] = true
			}
		}
	}
	for _, cat := range categories {
		if !found[string(cat)] {
			t.Errorf("No log file created for category %s", cat)
		}
	}
}

// TestNoLoggingWithoutDebugMode tests that nothing is written when debug
// mode is off (the production default).
func TestNoLoggingWithoutDebugMode(t *testing.T) {
	tempDir := t.TempDir()

	resetState()
	if err := Initialize(tempDir); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}

	if IsDebugMode() {
		t.Error("Expected debug mode to be disabled with no config")
	}

	Store("this should go nowhere")
	Backup("neither should this")

	if _, err := os.Stat(filepath.Join(tempDir, "logs")); !os.IsNotExist(err) {
		t.Error("Logs directory should not exist in production mode")
	}
}

// TestCategoryFilter tests that disabled categories are no-ops.
func TestCategoryFilter(t *testing.T) {
	tempDir := t.TempDir()

	configContent := `{
		"logging": {
			"level": "debug",
			"debug_mode": true,
			"categories": {
				"store": true,
				"backup": false
			}
		}
	}`
	if err := os.WriteFile(filepath.Join(tempDir, "config.json"), []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	resetState()
	if err := Initialize(tempDir); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}

	if !IsCategoryEnabled(CategoryStore) {
		t.Error("store category should be enabled")
	}
	if IsCategoryEnabled(CategoryBackup) {
		t.Error("backup category should be disabled")
	}
	// Unlisted categories default to enabled in debug mode
	if !IsCategoryEnabled(CategoryChecklist) {
		t.Error("unlisted category should default to enabled")
	}
}
