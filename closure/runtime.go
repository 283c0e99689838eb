// Package closure loads precompiled script closures and exposes them
// through the bridge's uniform call contract. Artifacts are compiled
// WebAssembly modules produced by a separate compilation step; this
// package never interprets them itself, it only instantiates them and
// wraps their exports as callables.
package closure

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"golang.org/x/crypto/blake2b"
)

// Runtime owns the execution environment precompiled closures run in.
// One runtime is shared by every artifact loaded through it; it lives
// for the process lifetime, matching the binding tables it feeds.
type Runtime struct {
	rt wazero.Runtime
}

// RuntimeOption configures the Runtime.
type RuntimeOption func(*runtimeConfig)

type runtimeConfig struct {
	wasi bool
}

// WithWASI instantiates the WASI host module, which artifacts built by
// toolchains like TinyGo import.
func WithWASI() RuntimeOption {
	return func(c *runtimeConfig) {
		c.wasi = true
	}
}

// NewRuntime creates a runtime for loading closure artifacts.
func NewRuntime(ctx context.Context, opts ...RuntimeOption) (*Runtime, error) {
	var cfg runtimeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	rt := wazero.NewRuntime(ctx)
	if cfg.wasi {
		wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	}
	return &Runtime{rt: rt}, nil
}

// Close releases resources held by the runtime and every module loaded
// through it.
func (r *Runtime) Close(ctx context.Context) error {
	return r.rt.Close(ctx)
}

// Checksum returns the blake2b-256 digest of an artifact, the form
// WithChecksum expects.
func Checksum(artifact []byte) [blake2b.Size256]byte {
	return blake2b.Sum256(artifact)
}

// LoadOption configures a single artifact load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	checksum    [blake2b.Size256]byte
	hasChecksum bool
}

// WithChecksum makes Load verify the artifact's blake2b-256 digest
// before instantiation and fail on mismatch.
func WithChecksum(sum [blake2b.Size256]byte) LoadOption {
	return func(c *loadConfig) {
		c.checksum = sum
		c.hasChecksum = true
	}
}

// Load instantiates a closure artifact. Verification, compilation, or
// instantiation failures are construction errors: no module is
// produced.
func (r *Runtime) Load(ctx context.Context, artifact []byte, opts ...LoadOption) (*Module, error) {
	var cfg loadConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.hasChecksum {
		sum := blake2b.Sum256(artifact)
		if subtle.ConstantTimeCompare(sum[:], cfg.checksum[:]) != 1 {
			return nil, fmt.Errorf("artifact checksum mismatch: got %s, want %s",
				hex.EncodeToString(sum[:8]), hex.EncodeToString(cfg.checksum[:8]))
		}
	}

	mod, err := r.rt.Instantiate(ctx, artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate artifact: %w", err)
	}
	return &Module{mod: mod}, nil
}
