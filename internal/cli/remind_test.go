package cli

import "testing"

func TestRemindCmd_DryRunUsesConfiguredTimezone(t *testing.T) {
	ctx := newTestContext(t)
	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	settings.Timezone = "UTC"
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	cmd := &RemindCmd{DryRun: true}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestRemindCmd_RejectsInvalidTimezone(t *testing.T) {
	ctx := newTestContext(t)
	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	// Bypasses Validate on purpose: a store written by an older build or
	// edited by hand can hold a zone name the host cannot load.
	settings.Timezone = "Mars/Olympus"
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	cmd := &RemindCmd{DryRun: true}
	if err := cmd.Run(ctx); err == nil {
		t.Error("Run() should fail when the configured timezone cannot be loaded")
	}
}
