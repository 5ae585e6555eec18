// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"strings"
	"testing"
)

const testSecret = "this-is-a-test-secret-at-least-32-bytes-long"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BLOGLY_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBPath != "./data/blogly.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/blogly.db")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() should be true by default")
	}
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("BLOGLY_SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail without BLOGLY_SESSION_SECRET")
	}
}

func TestLoadShortSecret(t *testing.T) {
	t.Setenv("BLOGLY_SESSION_SECRET", "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("Load should fail with a short session secret")
	}
	if !strings.Contains(err.Error(), "at least 32 bytes") {
		t.Errorf("error %q should mention the minimum length", err)
	}
}

func TestServerAddr(t *testing.T) {
	t.Setenv("BLOGLY_SESSION_SECRET", testSecret)
	t.Setenv("BLOGLY_SERVER_HOST", "0.0.0.0")
	t.Setenv("BLOGLY_SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := cfg.ServerAddr(); got != "0.0.0.0:9090" {
		t.Errorf("ServerAddr() = %q, want %q", got, "0.0.0.0:9090")
	}
}

func TestIsDevelopmentProduction(t *testing.T) {
	t.Setenv("BLOGLY_SESSION_SECRET", testSecret)
	t.Setenv("BLOGLY_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() should be false in production")
	}
}
