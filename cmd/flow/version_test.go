package main

import "testing"

func TestVersionString(t *testing.T) {
	prevVersion := buildVersion
	prevCommitID := buildCommitID
	t.Cleanup(func() {
		buildVersion = prevVersion
		buildCommitID = prevCommitID
	})

	buildVersion = "v1.2.3"
	buildCommitID = "commit456"

	got := versionString()
	want := "flow v1.2.3\ncommit_id commit456"
	if got != want {
		t.Fatalf("expected version string %q, got %q", want, got)
	}
}

func TestRootCommandHasVersion(t *testing.T) {
	if rootCmd.Version == "" {
		t.Fatal("expected root command version to be set")
	}
}
