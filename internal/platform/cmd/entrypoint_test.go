package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	Prefix     string `env:"CMD_TEST_PREFIX" envDefault:"-"`
	HealthAddr string `env:"CMD_TEST_HEALTH_ADDR" envDefault:":8090"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_PREFIX", "!")
	t.Setenv("CMD_TEST_HEALTH_ADDR", "env:9000")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfgRef.Prefix, "prefix", cfgRef.Prefix, "prefix")
	fs.StringVar(&cfgRef.HealthAddr, "health-addr", cfgRef.HealthAddr, "health address")

	if err := ParseArgs(fs, []string{"-health-addr", "flag:9001"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfgRef.HealthAddr != "flag:9001" {
		t.Fatalf("health addr = %q, want %q", cfgRef.HealthAddr, "flag:9001")
	}
	if cfgRef.Prefix != "!" {
		t.Fatalf("prefix = %q, want %q", cfgRef.Prefix, "!")
	}
}

func TestParseConfigFromArgsReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_PREFIX", "?")

	cfgRef := testConfig{}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	fs.StringVar(&cfgRef.HealthAddr, "health-addr", "", "health address")
	if err := ParseConfigFromArgs(&cfgRef, fs, []string{"-health-addr", "flag:9002"}); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfgRef.HealthAddr != "flag:9002" {
		t.Fatalf("health addr = %q, want %q", cfgRef.HealthAddr, "flag:9002")
	}
	if cfgRef.Prefix != "?" {
		t.Fatalf("prefix = %q, want %q", cfgRef.Prefix, "?")
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil config error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceSkillbar, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("SKILLBAR_OTEL_ENDPOINT", "")
	want := errors.New("boom")
	err := RunWithTelemetry(context.Background(), ServiceSkillbar, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("run error = %v, want %v", err, want)
	}
}
