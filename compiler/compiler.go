// Package compiler runs the whole pipeline: it loads a schema document,
// compiles its type graph and writes the generated Go packages.
//
//	err := compiler.Generate(ctx, "./schema/city.yaml",
//		gen.WithPackage("example.com/city/model"),
//		gen.WithTarget("./model"),
//	)
package compiler

import (
	"context"
	"time"

	"github.com/syssam/typegen/compiler/gen"
	"github.com/syssam/typegen/compiler/load"
	"github.com/syssam/typegen/internal/logging"
)

// Generate loads the schema at location and writes its generated model
// below the configured target. Nothing is written if the schema fails to
// compile.
func Generate(ctx context.Context, location string, opts ...gen.Option) error {
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}
	return GenerateConfig(ctx, location, cfg)
}

// GenerateConfig is like Generate but takes a prepared configuration.
func GenerateConfig(ctx context.Context, location string, cfg *gen.Config) error {
	start := time.Now()
	s, err := load.Load(ctx, location)
	if err != nil {
		return err
	}
	g, err := gen.Compile(cfg, s)
	if err != nil {
		return err
	}
	if err := gen.NewJenniferEmitter(cfg).Emit(ctx, g); err != nil {
		return err
	}
	logging.Info().
		Str("schema", location).
		Int("types", g.Registry.Len()).
		Dur("took", time.Since(start)).
		Msg("generation complete")
	return nil
}
