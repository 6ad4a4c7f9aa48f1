package commands_test

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.trai.ch/mason/cmd/mason/commands"
	"go.trai.ch/mason/internal/app"
)

// recordingApp captures the config each command hands to the application.
type recordingApp struct {
	runCalls  []app.RunConfig
	planCalls []app.RunConfig
	runErr    error
}

func (r *recordingApp) Run(_ context.Context, cfg app.RunConfig) error {
	r.runCalls = append(r.runCalls, cfg)
	return r.runErr
}

func (r *recordingApp) Plan(_ context.Context, cfg app.RunConfig) error {
	r.planCalls = append(r.planCalls, cfg)
	return nil
}

func newCLI(a commands.Application) (*commands.CLI, *bytes.Buffer) {
	cli := commands.New(a)
	var out bytes.Buffer
	cli.SetOutput(&out, &out)
	return cli, &out
}

func TestRun_PassesFlagsToApp(t *testing.T) {
	a := &recordingApp{}
	cli, _ := newCLI(a)

	cli.SetArgs([]string{
		"run",
		"--channel", "maintainer",
		"--upload", "maintainer",
		"--pythons", "2.7,3.4",
		"--numpys", "1.9 1.10",
		"--platform", "linux-64",
		"--builder", "mamba",
		"--no-test",
		"-k",
		"recipes/numpy", "recipes/scipy",
	})

	if err := cli.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(a.runCalls) != 1 {
		t.Fatalf("Expected exactly one Run call, got %d", len(a.runCalls))
	}

	got := a.runCalls[0]
	want := app.RunConfig{
		Patterns:    []string{"recipes/numpy", "recipes/scipy"},
		Pythons:     []string{"2.7", "3.4"},
		Numpys:      []string{"1.9", "1.10"},
		Platform:    "linux-64",
		ChannelUser: "maintainer",
		UploadUser:  "maintainer",
		Builder:     "mamba",
		NoTest:      true,
		KeepGoing:   true,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Run config mismatch:\n got: %+v\nwant: %+v", got, want)
	}
}

func TestRun_DefaultVersionLists(t *testing.T) {
	a := &recordingApp{}
	cli, _ := newCLI(a)

	cli.SetArgs([]string{"run", "recipes/numpy"})
	if err := cli.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(a.runCalls) != 1 {
		t.Fatalf("Expected exactly one Run call, got %d", len(a.runCalls))
	}

	got := a.runCalls[0]
	if !reflect.DeepEqual(got.Pythons, []string{"2.7", "3.4", "3.5"}) {
		t.Errorf("Unexpected default pythons: %v", got.Pythons)
	}
	if !reflect.DeepEqual(got.Numpys, []string{"1.9", "1.10"}) {
		t.Errorf("Unexpected default numpys: %v", got.Numpys)
	}
	if got.Builder != "conda" {
		t.Errorf("Unexpected default builder: %q", got.Builder)
	}
	if got.KeepGoing {
		t.Error("Expected fail-fast by default")
	}
}

func TestRun_NoArgsShowsHelp(t *testing.T) {
	a := &recordingApp{}
	cli, out := newCLI(a)

	cli.SetArgs([]string{"run"})
	if err := cli.Execute(context.Background()); err != nil {
		t.Errorf("Expected no error for no recipe args, got: %v", err)
	}
	if len(a.runCalls) != 0 {
		t.Errorf("Expected no Run call without recipe args, got %d", len(a.runCalls))
	}
	if !strings.Contains(out.String(), "Build the given recipes") {
		t.Errorf("Expected help output, got: %q", out.String())
	}
}

func TestRun_PropagatesAppError(t *testing.T) {
	appErr := errors.New("builder not found")
	a := &recordingApp{runErr: appErr}
	cli, _ := newCLI(a)

	cli.SetArgs([]string{"run", "recipes/numpy"})
	if err := cli.Execute(context.Background()); !errors.Is(err, appErr) {
		t.Errorf("Expected the application error, got: %v", err)
	}
}

func TestPlan_CallsPlanNotRun(t *testing.T) {
	a := &recordingApp{}
	cli, _ := newCLI(a)

	cli.SetArgs([]string{"plan", "--channel", "maintainer", "recipes/scipy"})
	if err := cli.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(a.planCalls) != 1 || len(a.runCalls) != 0 {
		t.Fatalf("Expected exactly one Plan call and no Run calls, got %d/%d", len(a.planCalls), len(a.runCalls))
	}
	if a.planCalls[0].ChannelUser != "maintainer" {
		t.Errorf("Unexpected channel user: %q", a.planCalls[0].ChannelUser)
	}
}

func TestVersion_PrintsVersion(t *testing.T) {
	a := &recordingApp{}
	cli, out := newCLI(a)

	cli.SetArgs([]string{"version"})
	if err := cli.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Error("Expected version output")
	}
}

func TestRoot_Help(t *testing.T) {
	a := &recordingApp{}
	cli, _ := newCLI(a)

	cli.SetArgs([]string{"--help"})
	if err := cli.Execute(context.Background()); err != nil {
		t.Errorf("Expected no error for help, got: %v", err)
	}
}
